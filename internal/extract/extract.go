// Package extract turns a submitted email (uploaded file or pasted text) into plain text.
package extract

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrNoContent         = errors.New("no content submitted")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUndecodable       = errors.New("cannot decode text file")
	ErrPDFUnreadable     = errors.New("cannot read pdf")
)

// Kind identifies where the extracted text came from.
type Kind string

const (
	KindText Kind = "text"
	KindPDF  Kind = "pdf"
	KindTXT  Kind = "txt"
)

// Result is the text extracted from a submission.
type Result struct {
	Text string
	Kind Kind
	// Encoding is the charset used to decode a .txt upload; empty otherwise.
	Encoding string
}

// Extractor resolves submissions into text. The zero value is not usable; use New.
type Extractor struct {
	decoder *Decoder
}

// New returns an Extractor decoding .txt uploads with decoder.
// A nil decoder selects DefaultDecoder.
func New(decoder *Decoder) *Extractor {
	if decoder == nil {
		decoder = DefaultDecoder()
	}
	return &Extractor{decoder: decoder}
}

// FromFile extracts text from an uploaded file, dispatching on the file extension.
func (e *Extractor) FromFile(filename string, data []byte) (Result, error) {
	var res Result
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err := PDFText(data)
		if err != nil {
			return Result{}, err
		}
		res = Result{Text: text, Kind: KindPDF}
	case ".txt":
		text, charset, err := e.decoder.Decode(data)
		if err != nil {
			return Result{}, err
		}
		res = Result{Text: text, Kind: KindTXT, Encoding: charset}
	default:
		return Result{}, ErrUnsupportedFormat
	}

	if strings.TrimSpace(res.Text) == "" {
		return Result{}, ErrNoContent
	}
	return res, nil
}

// FromText trims pasted text and rejects empty submissions.
func (e *Extractor) FromText(text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrNoContent
	}
	return Result{Text: text, Kind: KindText}, nil
}
