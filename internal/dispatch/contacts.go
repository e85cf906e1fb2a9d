package dispatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Contact is one recipient of a bulk send. Any field may be empty.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type column int

const (
	colNone column = iota
	colName
	colPhone
	colEmail
)

// headerSynonyms is keyed by normalized header text, see headerKey.
var headerSynonyms = map[string]column{
	"name":         colName,
	"fullname":     colName,
	"passenger":    colName,
	"שם":           colName,
	"phone":        colPhone,
	"phonenumber":  colPhone,
	"mobile":       colPhone,
	"mobilenumber": colPhone,
	"tel":          colPhone,
	"telephone":    colPhone,
	"טלפון":        colPhone,
	"email":        colEmail,
	"mail":         colEmail,
	"emailaddress": colEmail,
	"אימייל":       colEmail,
}

var headerSeparators = strings.NewReplacer(" ", "", "_", "", "-", "")

// headerKey folds "Email Address", "email_address" and "E-Mail" alike.
func headerKey(cell string) string {
	return headerSeparators.Replace(strings.ToLower(strings.TrimSpace(cell)))
}

// ErrNoContacts is returned when a contact file has no data rows.
var ErrNoContacts = errors.New("no contacts found")

// ParseContacts reads contacts from CSV. A header row is optional: when the
// first row names at least one known column it is used to map columns,
// otherwise rows are read positionally as name, phone, email. Blank rows
// are skipped. Any CSV syntax error aborts the whole parse.
func ParseContacts(r io.Reader) ([]Contact, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse contacts csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoContacts
	}

	records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")

	layout := []column{colName, colPhone, colEmail}
	if header, ok := parseHeader(records[0]); ok {
		layout = header
		records = records[1:]
	}

	contacts := make([]Contact, 0, len(records))
	for _, rec := range records {
		if blankRecord(rec) {
			continue
		}
		var c Contact
		for i, cell := range rec {
			if i >= len(layout) {
				break
			}
			v := strings.TrimSpace(cell)
			switch layout[i] {
			case colName:
				c.Name = v
			case colPhone:
				c.Phone = v
			case colEmail:
				c.Email = v
			}
		}
		contacts = append(contacts, c)
	}

	if len(contacts) == 0 {
		return nil, ErrNoContacts
	}
	return contacts, nil
}

func parseHeader(rec []string) ([]column, bool) {
	layout := make([]column, len(rec))
	known := false
	for i, cell := range rec {
		if col, ok := headerSynonyms[headerKey(cell)]; ok {
			layout[i] = col
			known = true
		}
	}
	return layout, known
}

func blankRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
