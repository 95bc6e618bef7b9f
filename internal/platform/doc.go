// Package platform contains OS integration and external tooling glue:
// filesystem helpers, ffmpeg discovery, playlist listing and folder reveal.
package platform
