// Package wavhdr parses and validates the header chunks of RIFF/WAVE files.
//
// It reads the RIFF envelope, the fmt chunk (16, 18 and 40 byte layouts)
// and the fact chunk into value records, checking the chunk-size and
// codec-dependent rules of the WAVE format. Chunks are located by walking
// the file tag by tag; other chunks (cue, LIST, bext, iXML, ds64, ...) are
// identified but not decoded. Sample data is never decoded.
//
// Two entry points share the same rules:
//
//   - Parse / ParseFile work on a file held in memory.
//   - Decoder works on an io.Reader and skips over the data chunk.
//
// The lower level ParseRiffHeader, ParseFmtChunk and ParseFactChunk read a
// single record at a given offset and return the offset of the next chunk.
package wavhdr
