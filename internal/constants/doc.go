// Package constants holds fixed values shared across commitgen, such as the
// ASCII logo and tagline shown by --logo and the progress view.
package constants
