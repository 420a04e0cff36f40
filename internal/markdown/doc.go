// Package markdown implements the source side of the content pipeline:
// front matter extraction, body section capture, asset reference collection,
// and filesystem discovery of exercise documents.
package markdown
