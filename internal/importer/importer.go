// Package importer loads vocabulary word lists from JSON, CSV and XLSX
// files into the canonical Word shape. JSON files are validated against a
// schema before decoding; spreadsheet files follow a fixed column layout.
package importer

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/jsvoboda/lexidrill/internal/vocab"
)

// Spreadsheet column order for CSV and XLSX imports.
// word, translation, pos, pronunciation, example, unit, section, lang
const (
	colWord = iota
	colTranslation
	colPOS
	colPronunciation
	colExample
	colUnit
	colSection
	colLang
)

// Load reads a word list file, dispatching on the extension
// (.json, .csv, .xlsx). Records with a missing id get a generated one.
func Load(path string) ([]vocab.Word, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, errors.Errorf("unsupported word list format %q", filepath.Ext(path))
	}
}

// LoadJSON reads and validates a vocabulary JSON file.
func LoadJSON(path string) ([]vocab.Word, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read word list")
	}
	if err := validateWordList(raw); err != nil {
		return nil, err
	}

	var words []vocab.Word
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, errors.Wrap(err, "decode word list")
	}
	return finalize(words), nil
}

// LoadCSV reads a comma-separated word list. A header row is detected by
// its first cell being the literal "word" and skipped.
func LoadCSV(path string) ([]vocab.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open word list")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv")
		}
		rows = append(rows, record)
	}

	if len(rows) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][colWord]), "word") {
		rows = rows[1:]
	}
	return fromRows(rows), nil
}

// LoadXLSX reads the first sheet of an Excel word list, skipping the
// header row.
func LoadXLSX(path string) ([]vocab.Word, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "read sheet")
	}

	if len(rows) > 0 {
		rows = rows[1:]
	}
	return fromRows(rows), nil
}

func fromRows(rows [][]string) []vocab.Word {
	var words []vocab.Word
	for _, row := range rows {
		w := vocab.Word{
			Word:          cell(row, colWord),
			Translation:   cell(row, colTranslation),
			POS:           cell(row, colPOS),
			Pronunciation: cell(row, colPronunciation),
			Example:       cell(row, colExample),
			Unit:          cell(row, colUnit),
			Section:       cell(row, colSection),
			Lang:          cell(row, colLang),
		}
		if w.Word == "" && w.Translation == "" {
			continue
		}
		words = append(words, w)
	}
	return finalize(words)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// finalize fills in generated ids and the default language.
func finalize(words []vocab.Word) []vocab.Word {
	for i := range words {
		if words[i].ID == "" {
			words[i].ID = uuid.NewString()
		}
		if words[i].Lang == "" {
			words[i].Lang = "en"
		}
	}
	return words
}
