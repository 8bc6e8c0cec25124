package stats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeError reports a message that is not a well-formed feed event.
// The display keeps its previous frame when decoding fails.
type DecodeError struct {
	Text string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode message: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(text string, err error) error {
	return &DecodeError{Text: text, Err: err}
}

// Decode parses an un-framed message of the form [tag, payload].
//
// Messages whose tag is not TagStatistics decode to a Message with only Tag
// set. For statistics, entries with a count <= 0 are dropped but still
// contribute to TotalRawCount. Records keep the key order of the payload
// object and start with Allocated equal to RawCount.
func Decode(text string, hues HueTable) (Message, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(text), &arr); err != nil {
		return Message{}, decodeErr(text, err)
	}
	if len(arr) == 0 {
		return Message{}, decodeErr(text, errors.New("empty array"))
	}

	var tag string
	if err := json.Unmarshal(arr[0], &tag); err != nil {
		return Message{}, decodeErr(text, fmt.Errorf("tag: %w", err))
	}
	if tag != TagStatistics {
		return Message{Tag: tag}, nil
	}
	if len(arr) != 2 {
		return Message{}, decodeErr(text, fmt.Errorf("statistics: want 2 elements, got %d", len(arr)))
	}

	entries, err := decodeCounts(arr[1])
	if err != nil {
		return Message{}, decodeErr(text, fmt.Errorf("statistics: %w", err))
	}

	msg := Message{Tag: tag}
	for _, e := range entries {
		msg.TotalRawCount += e.count
		if e.count <= 0 {
			continue
		}
		msg.Records = append(msg.Records, LanguageStat{
			Code:      e.code,
			RawCount:  e.count,
			Allocated: e.count,
			Hue:       hues.Lookup(e.code),
		})
	}
	return msg, nil
}

type countEntry struct {
	code  string
	count int
}

// decodeCounts reads a JSON object of integer counts in document order.
// A repeated key overwrites the earlier value in place.
func decodeCounts(raw json.RawMessage) ([]countEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("payload is not an object")
	}

	var entries []countEntry
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		code, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}

		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("count for %q: %w", code, err)
		}
		v, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("count for %q: %w", code, err)
		}

		if i, seen := index[code]; seen {
			entries[i].count = int(v)
			continue
		}
		index[code] = len(entries)
		entries = append(entries, countEntry{code: code, count: int(v)})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
