// Package scanner decodes barcode images into text payloads.
//
// Decoding is a capability boundary: the Decoder interface takes raw image
// bytes and returns the decoded text, if any. No symbology selection or
// checksum validation happens here. The bundled implementation shells out
// to zbarimg.
package scanner
