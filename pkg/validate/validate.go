// Package validate holds the field-level checks the view layer runs before
// calling into the data layer. The rules intentionally mirror what earlier
// releases accepted; tightening any of them would reject data users have
// already entered.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Email requires an @ that is not the first character, followed somewhere
// by a dot with at least one character after it. Deliberately weaker than
// RFC 5322.
func Email(email string) bool {
	if email == "" {
		return false
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return false
	}
	dot := strings.IndexByte(email[at:], '.')
	if dot < 0 {
		return false
	}
	dot += at
	if dot == at+1 || dot == len(email)-1 {
		return false
	}
	return true
}

// Password enforces a minimum length; at eight or more it additionally
// requires a digit or a non-alphanumeric character.
func Password(password string, minLength int) bool {
	if len(password) < minLength {
		return false
	}
	if minLength >= 8 {
		ok := false
		for _, r := range password {
			if unicode.IsDigit(r) || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Required reports whether the value is non-empty after trimming leading
// whitespace.
func Required(value string) bool {
	return strings.TrimLeftFunc(value, unicode.IsSpace) != ""
}

// Date accepts YYYY-M-D with the year in [1900,2100] and a day valid for
// the month, including the leap-year rule.
func Date(dateStr string) bool {
	if dateStr == "" {
		return false
	}
	var year, month, day int
	if n, err := fmt.Sscanf(dateStr, "%d-%d-%d", &year, &month, &day); err != nil || n != 3 {
		return false
	}
	if year < 1900 || year > 2100 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > 31 {
		return false
	}
	return day <= daysInMonth(year, month)
}

// Time accepts H:M with hour in [0,23] and minute in [0,59].
func Time(timeStr string) bool {
	if timeStr == "" {
		return false
	}
	var hour, minute int
	if n, err := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute); err != nil || n != 2 {
		return false
	}
	if hour < 0 || hour > 23 {
		return false
	}
	return minute >= 0 && minute <= 59
}

// DateTime accepts a date part and a time part separated by whitespace.
func DateTime(datetimeStr string) bool {
	fields := strings.Fields(datetimeStr)
	if len(fields) != 2 {
		return false
	}
	return Date(fields[0]) && Time(fields[1])
}

// RollNumber has no format constraint beyond being required.
func RollNumber(rollNumber string) bool {
	return Required(rollNumber)
}

// Phone allows digits, spaces and the characters + - ( ).
func Phone(phone string) bool {
	if !Required(phone) {
		return false
	}
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r):
		case r == ' ' || r == '+' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return true
}

// ParseDateTime parses "YYYY-MM-DD[ HH:MM:SS]" in local time; missing time
// components default to midnight.
func ParseDateTime(datetimeStr string) (time.Time, error) {
	if datetimeStr == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}
	var year, month, day, hour, minute, second int
	n, _ := fmt.Sscanf(datetimeStr, "%d-%d-%d %d:%d:%d", &year, &month, &day, &hour, &minute, &second)
	if n < 3 {
		hour, minute, second = 0, 0, 0
		if n, err := fmt.Sscanf(datetimeStr, "%d-%d-%d", &year, &month, &day); err != nil || n != 3 {
			return time.Time{}, fmt.Errorf("parse datetime %q", datetimeStr)
		}
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), nil
}

// FormatDateTime renders a timestamp as "YYYY-MM-DD HH:MM:SS" in local time.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// FormatDate renders a timestamp as "YYYY-MM-DD" in local time.
func FormatDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// DateOnly truncates a timestamp to local midnight of its calendar day.
func DateOnly(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

func daysInMonth(year, month int) int {
	days := [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if month == 2 && ((year%4 == 0 && year%100 != 0) || year%400 == 0) {
		return 29
	}
	return days[month-1]
}
