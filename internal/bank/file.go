package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// File is the on-disk layout of a bank:
//
//	topics:
//	  - name: Storage
//	    questions:
//	      - question: Which AWS service is used for object storage?
//	        options: [Amazon EBS, Amazon S3]
//	        correct_index: 1
type File struct {
	Topics []FileTopic `json:"topics" yaml:"topics"`
}

type FileTopic struct {
	Name      string     `json:"name" yaml:"name"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// FormatForPath picks the decoder from the file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

func LoadFile(path string) (*Bank, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("unsupported bank file extension %q", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, nil
}

func Decode(r io.Reader, format Format) (*Bank, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var file File
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(&file)
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		err = decoder.Decode(&file)
	default:
		return nil, fmt.Errorf("unsupported bank format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s bank: %w", format, err)
	}

	if len(file.Topics) == 0 {
		return nil, fmt.Errorf("bank has no topics")
	}

	b := New()
	for _, topic := range file.Topics {
		if b.Has(strings.TrimSpace(topic.Name)) {
			return nil, fmt.Errorf("duplicate topic %q", topic.Name)
		}
		if err := b.Add(topic.Name, topic.Questions); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Encode writes b in the File layout.
func Encode(w io.Writer, b *Bank, format Format) error {
	file := File{}
	for _, name := range b.Topics() {
		questions, _ := b.Questions(name)
		file.Topics = append(file.Topics, FileTopic{Name: name, Questions: questions})
	}

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(file)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(file); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported bank format %q", format)
	}
}
