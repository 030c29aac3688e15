// Package assets embeds the page template and stylesheet used by payload
// previews.
//
//	styles/
//	└── preview.css
//	templates/
//	└── preview.html
//
// Asset names are validated before lookup and never contain path
// separators or dots.
package assets
