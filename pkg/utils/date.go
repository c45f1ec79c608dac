package utils

import (
	"time"
)

// ParseDate interpreta datas no formato AAAA-MM-DD; string vazia resulta em data zero
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}
