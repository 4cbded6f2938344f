// Package token splits and decodes compact three-segment tokens into
// pretty-printed header and payload JSON.
//
// The signature segment is carried verbatim and never verified.
package token

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/grovetools/jwtview/errors"
	"github.com/grovetools/jwtview/pkg/profiling"
)

const indent = "  "

// Segments holds the three raw base64url parts of a token.
type Segments struct {
	Header    string
	Payload   string
	Signature string
}

// Decoded is a token whose header and payload have been decoded and
// pretty-printed. Key order is preserved from the original JSON.
type Decoded struct {
	Raw         string       `json:"-"`
	Header      string       `json:"header"`
	Payload     string       `json:"payload"`
	Signature   string       `json:"signature"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Split trims surrounding whitespace and an optional "Bearer " prefix from raw
// and splits it into its three segments.
func Split(raw string) (Segments, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return Segments{}, errors.TokenMalformed(0)
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Segments{}, errors.TokenMalformed(len(parts))
	}
	return Segments{Header: parts[0], Payload: parts[1], Signature: parts[2]}, nil
}

// DecodeSegment decodes one base64url segment. Padding is tolerated and the
// standard alphabet is accepted as a fallback.
func DecodeSegment(seg string) ([]byte, error) {
	trimmed := strings.TrimRight(seg, "=")
	data, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err == nil {
		return data, nil
	}
	if alt, altErr := base64.RawStdEncoding.DecodeString(trimmed); altErr == nil {
		return alt, nil
	}
	return nil, err
}

// Decode splits raw, decodes the header and payload and pretty-prints both.
// The payload must be a JSON object.
func Decode(raw string) (*Decoded, error) {
	defer profiling.Start("decode").Stop()

	segs, err := Split(raw)
	if err != nil {
		return nil, err
	}

	headerJSON, err := DecodeSegment(segs.Header)
	if err != nil {
		return nil, errors.SegmentDecode("header", err)
	}
	payloadJSON, err := DecodeSegment(segs.Payload)
	if err != nil {
		return nil, errors.SegmentDecode("payload", err)
	}

	header, err := Pretty(headerJSON)
	if err != nil {
		return nil, errors.JSONInvalid("header", err)
	}
	payload, err := Pretty(payloadJSON)
	if err != nil {
		return nil, errors.JSONInvalid("payload", err)
	}

	_, kind, _, err := jsonparser.Get(payloadJSON)
	if err != nil {
		return nil, errors.JSONInvalid("payload", err)
	}
	if kind != jsonparser.Object {
		return nil, errors.PayloadNotObject(kind.String())
	}

	return &Decoded{
		Raw:         strings.TrimSpace(raw),
		Header:      header,
		Payload:     payload,
		Signature:   segs.Signature,
		Annotations: Annotations(payloadJSON),
	}, nil
}

// Pretty re-indents a JSON document with two spaces, keeping key order.
func Pretty(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", indent); err != nil {
		return "", err
	}
	return buf.String(), nil
}
