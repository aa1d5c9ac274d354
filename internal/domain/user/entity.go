package user

import (
	"fmt"
	"strconv"
)

// TelegramID represents the user's Telegram ID
type TelegramID int64

// ParseTelegramID parses the decimal form produced by String
func ParseTelegramID(s string) (TelegramID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram id %q: %w", s, err)
	}
	return TelegramID(id), nil
}

func (id TelegramID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// MarshalText lets TelegramID be used as a JSON object key
func (id TelegramID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText is the inverse of MarshalText
func (id *TelegramID) UnmarshalText(text []byte) error {
	parsed, err := ParseTelegramID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
