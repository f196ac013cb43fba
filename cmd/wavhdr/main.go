// This tool prints the RIFF, fmt and fact header fields of the passed wav files.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/wavhdr"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

const usageMessage = "Usage: wavhdr [-fact nonpcm|optional|required] [-layout walk|fixed] [-stream] [-v] file_paths ..."

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, flag.ErrHelp):
		return
	case errors.Is(err, errMissingPath):
		fmt.Println(usageMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var (
	errMissingPath = errors.New("missing path argument")
	errAIFFInput   = errors.New("input is an AIFF file, not WAVE")
)

type config struct {
	factPolicy wavhdr.FactPolicy
	layout     wavhdr.Layout
	stream     bool
	verbose    bool
	paths      []string
}

func parseFlags(args []string) (config, error) {
	flagSet := flag.NewFlagSet("wavhdr", flag.ContinueOnError)

	fact := flagSet.String("fact", wavhdr.FactRequiredNonPCM.String(), "when a fact chunk is required: nonpcm, optional or required")
	layout := flagSet.String("layout", wavhdr.LayoutWalk.String(), "chunk layout: walk (any order) or fixed (fmt at byte 12, fact after it)")
	stream := flagSet.Bool("stream", false, "decode from the file stream instead of reading it into memory")
	verbose := flagSet.Bool("v", false, "log progress")

	if err := flagSet.Parse(args); err != nil {
		return config{}, err
	}

	cfg := config{
		stream:  *stream,
		verbose: *verbose,
		paths:   flagSet.Args(),
	}

	var err error
	if cfg.factPolicy, err = wavhdr.ParseFactPolicy(*fact); err != nil {
		return config{}, err
	}

	if cfg.layout, err = wavhdr.ParseLayout(*layout); err != nil {
		return config{}, err
	}

	if len(cfg.paths) == 0 {
		return config{}, errMissingPath
	}

	return cfg, nil
}

func run(args []string, out io.Writer) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	for i, path := range cfg.paths {
		fmt.Fprintf(out, "\tFile info for %s:\n\n", path)

		file, err := inspect(path, cfg)
		if err != nil {
			return fmt.Errorf("error parsing file %s: %w", path, err)
		}

		printFile(out, file)

		if i < len(cfg.paths)-1 {
			fmt.Fprintln(out)
		}
	}

	return nil
}

func inspect(path string, cfg config) (*wavhdr.File, error) {
	opts := []wavhdr.Option{
		wavhdr.WithFactPolicy(cfg.factPolicy),
		wavhdr.WithLayout(cfg.layout),
	}

	if cfg.verbose {
		log.Printf("parsing %s (layout %s, fact policy %s, stream %t)", path, cfg.layout, cfg.factPolicy, cfg.stream)
	}

	if cfg.stream {
		in, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer in.Close()

		file, err := wavhdr.NewDecoder(in, opts...).Decode()
		if err != nil {
			return nil, aiffHint(err, in)
		}

		return file, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if cfg.verbose {
		log.Printf("read %d bytes from %s", len(buf), path)
	}

	file, err := wavhdr.Parse(buf, opts...)
	if err != nil {
		return nil, aiffHint(err, bytes.NewReader(buf))
	}

	return file, nil
}

// aiffHint annotates a bad RIFF header error when the input is an AIFF file.
func aiffHint(err error, r io.ReadSeeker) error {
	if !errors.Is(err, wavhdr.ErrUnexpectedTag) {
		return err
	}

	if _, seekErr := r.Seek(0, io.SeekStart); seekErr != nil {
		return err
	}

	if aiff.NewDecoder(r).IsValidFile() {
		return fmt.Errorf("%w (%w)", err, errAIFFInput)
	}

	return err
}

func printFile(out io.Writer, file *wavhdr.File) {
	hdr := file.Header
	fmt.Fprintf(out, "riff.chunk_id=%s\n", hdr.ChunkID[:])
	fmt.Fprintf(out, "riff.chunk_size=%d\n", hdr.ChunkSize)
	fmt.Fprintf(out, "riff.wave_id=%s\n", hdr.WaveID[:])
	fmt.Fprintf(out, "riff.wave_chunks=%d\n", hdr.WaveChunks)

	fc := file.Fmt
	fmt.Fprintf(out, "fmt.chunk_id=%s\n", fc.ChunkID[:])
	fmt.Fprintf(out, "fmt.chunk_size=%d\n", fc.Size)
	fmt.Fprintf(out, "fmt.format_tag=%d\n", uint16(fc.FormatTag))
	fmt.Fprintf(out, "format_tag=%s\n", fc.FormatTag)
	fmt.Fprintf(out, "fmt.n_channels=%d\n", fc.NumChannels)
	fmt.Fprintf(out, "fmt.n_sample_per_sec=%d\n", fc.SampleRate)
	fmt.Fprintf(out, "fmt.n_avg_bytes_per_sec=%d\n", fc.AvgBytesPerSec)
	fmt.Fprintf(out, "fmt.n_block_align=%d\n", fc.BlockAlign)
	fmt.Fprintf(out, "fmt.w_bits_per_sample=%d\n", fc.BitsPerSample)

	if fc.HasExtensionSize() {
		fmt.Fprintf(out, "fmt.cb_size=%d\n", fc.CbSize)
	}

	if ext := fc.Extensible; ext != nil {
		fmt.Fprintf(out, "fmt.w_valid_bits_per_sample=%d\n", ext.ValidBitsPerSample)
		fmt.Fprintf(out, "fmt.dw_channel_mask=0x%08X (%s)\n", uint32(ext.ChannelMask), ext.ChannelMask)
		fmt.Fprintf(out, "fmt.sub_format=%s\n", ext.SubFormatGUID())
		fmt.Fprintf(out, "sub_format=%s\n", fc.EffectiveFormatTag())
	}

	if fact := file.Fact; fact != nil {
		fmt.Fprintf(out, "fact.chunk_id=%s\n", fact.ChunkID[:])
		fmt.Fprintf(out, "fact.chunk_size=%d\n", fact.Size)
		fmt.Fprintf(out, "fact.dw_sample_length=%d\n", fact.SampleLength)
	} else {
		fmt.Fprintln(out, "fact: none")
	}

	if file.HasData {
		fmt.Fprintf(out, "data.offset=%d\n", file.DataOffset)
		fmt.Fprintf(out, "data.size=%d\n", file.DataSize)
	}

	pcm := fc.PCMBuffer()
	fmt.Fprintf(out, "format: %d channel(s) @ %d Hz\n", pcm.Format.NumChannels, pcm.Format.SampleRate)
	fmt.Fprintf(out, "pcm.data_type=%s\n", dataTypeName(pcm.DataType))
	fmt.Fprintf(out, "pcm.source_bytes=%d\n", pcm.SourceBitDepth)

	if fc.EffectiveFormatTag() == wavhdr.CodecPCM {
		if full := audio.IntMaxSignedValue(int(fc.BitsPerSample)); full > 0 {
			fmt.Fprintf(out, "pcm.full_scale=%d\n", full)
		}
	}

	if frames, err := file.Frames(); err == nil {
		fmt.Fprintf(out, "frames: %d\n", frames)
	}

	if dur, err := file.Duration(); err == nil {
		fmt.Fprintf(out, "duration: %s\n", dur)
	}

	fmt.Fprintln(out, "chunks:")

	for i, ch := range file.Chunks {
		fmt.Fprintf(out, "\t[%d] %q offset=%d size=%d\n", i, ch.String(), ch.Offset, ch.Size)
	}
}

var dataTypeNames = map[audio.PCMDataFormat]string{
	audio.DataTypeI8:  "int8",
	audio.DataTypeI16: "int16",
	audio.DataTypeI32: "int32",
	audio.DataTypeF32: "float32",
	audio.DataTypeF64: "float64",
}

func dataTypeName(t audio.PCMDataFormat) string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}

	return "unknown"
}
