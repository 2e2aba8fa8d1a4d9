package utils

import (
	"time"
	_ "time/tzdata" // exchange time zones must resolve inside minimal containers
)

// IST is the Indian Standard Time location (UTC+5:30).
var IST = loadZone("Asia/Kolkata", 5*60*60+30*60)

// NewYork is the US Eastern location used for NYSE/NASDAQ sessions.
var NewYork = loadZone("America/New_York", -5*60*60)

func loadZone(name string, fallbackOffset int) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, fallbackOffset)
	}
	return loc
}

// Session describes one exchange's regular trading window.
type Session struct {
	Name        string
	Location    *time.Location
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
	Holidays    map[string]string
}

// NSESession is the NSE cash-market session, 09:15–15:30 IST.
var NSESession = Session{
	Name:        "NSE",
	Location:    IST,
	OpenHour:    9,
	OpenMinute:  15,
	CloseHour:   15,
	CloseMinute: 30,
	Holidays:    nseHolidays2026,
}

// NYSESession is the US regular session, 09:30–16:00 New York time.
var NYSESession = Session{
	Name:        "NYSE",
	Location:    NewYork,
	OpenHour:    9,
	OpenMinute:  30,
	CloseHour:   16,
	CloseMinute: 0,
}

// OpenAt returns the session open on the calendar day of t.
func (s Session) OpenAt(t time.Time) time.Time {
	d := t.In(s.Location)
	return time.Date(d.Year(), d.Month(), d.Day(), s.OpenHour, s.OpenMinute, 0, 0, s.Location)
}

// CloseAt returns the session close on the calendar day of t.
func (s Session) CloseAt(t time.Time) time.Time {
	d := t.In(s.Location)
	return time.Date(d.Year(), d.Month(), d.Day(), s.CloseHour, s.CloseMinute, 0, 0, s.Location)
}

// IsTradingDay reports whether t falls on a weekday that is not a holiday.
func (s Session) IsTradingDay(t time.Time) bool {
	t = t.In(s.Location)
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	_, holiday := s.Holidays[t.Format("2006-01-02")]
	return !holiday
}

// IsOpenAt reports whether the session is trading at t. Both ends are inclusive.
func (s Session) IsOpenAt(t time.Time) bool {
	if !s.IsTradingDay(t) {
		return false
	}
	return !t.Before(s.OpenAt(t)) && !t.After(s.CloseAt(t))
}

// NowIST returns the current time in IST.
func NowIST() time.Time {
	return time.Now().In(IST)
}

// IsMarketOpen checks if the NSE market is currently open.
func IsMarketOpen() bool {
	return IsMarketOpenAt(time.Now())
}

// IsMarketOpenAt checks if the NSE market would be open at the given time.
func IsMarketOpenAt(t time.Time) bool {
	return NSESession.IsOpenAt(t)
}

// IsUSMarketOpenAt checks if the US regular session is open at t.
func IsUSMarketOpenAt(t time.Time) bool {
	return NYSESession.IsOpenAt(t)
}

// SessionFor picks the session that governs an identifier.
func SessionFor(id string) Session {
	if IsDomestic(id) {
		return NSESession
	}
	return NYSESession
}

// IsTradingHoliday checks if the given date is an NSE trading holiday.
func IsTradingHoliday(t time.Time) bool {
	_, ok := nseHolidays2026[t.In(IST).Format("2006-01-02")]
	return ok
}

// NSE Trading Holidays for 2026 (update annually).
// Source: NSE India circular.
var nseHolidays2026 = map[string]string{
	"2026-01-26": "Republic Day",
	"2026-02-17": "Mahashivratri",
	"2026-03-10": "Holi",
	"2026-03-30": "Id-ul-Fitr (Ramadan)",
	"2026-04-02": "Ram Navami",
	"2026-04-03": "Good Friday",
	"2026-04-14": "Dr. Ambedkar Jayanti",
	"2026-05-01": "Maharashtra Day",
	"2026-05-25": "Buddha Purnima",
	"2026-06-05": "Id-ul-Zuha (Bakri Id)",
	"2026-07-06": "Muharram",
	"2026-08-15": "Independence Day",
	"2026-08-18": "Parsi New Year",
	"2026-09-04": "Milad-un-Nabi",
	"2026-10-02": "Mahatma Gandhi Jayanti",
	"2026-10-20": "Dussehra",
	"2026-11-09": "Diwali (Laxmi Pujan)",
	"2026-11-10": "Diwali (Balipratipada)",
	"2026-11-30": "Guru Nanak Jayanti",
	"2026-12-25": "Christmas",
}

// FormatDateTimeIST formats a time.Time to "2006-01-02 15:04:05 IST".
func FormatDateTimeIST(t time.Time) string {
	return t.In(IST).Format("2006-01-02 15:04:05 IST")
}

// MarketStatus returns the NSE market status string at t.
func MarketStatus(t time.Time) string {
	now := t.In(IST)

	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return "CLOSED (Weekend)"
	}
	if holiday, ok := nseHolidays2026[now.Format("2006-01-02")]; ok {
		return "CLOSED (" + holiday + ")"
	}

	preOpen := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, IST)
	switch {
	case now.Before(preOpen):
		return "PRE-MARKET"
	case now.Before(NSESession.OpenAt(now)):
		return "PRE-OPEN SESSION"
	case !now.After(NSESession.CloseAt(now)):
		return "OPEN"
	default:
		return "CLOSED"
	}
}
