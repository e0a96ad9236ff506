// Package hud reads the broadcast scoreboard overlay: each template region
// is binarized for its field type, OCR'd with a matching character
// whitelist, and parsed into a typed value. A field that fails to read
// degrades to nil instead of failing the frame.
package hud
