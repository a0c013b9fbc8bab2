package model

import (
	"fmt"
	"strings"
	"time"
)

// Lang is the conversation language picked by the ticket owner.
type Lang string

// Supported languages.
const (
	LangEN Lang = "EN"
	LangFR Lang = "FR"
)

// ParseLang returns the language for a code, defaulting to English.
func ParseLang(s string) Lang {
	if strings.EqualFold(strings.TrimSpace(s), string(LangFR)) {
		return LangFR
	}
	return LangEN
}

// Action is what the owner wants to do with their items.
type Action string

// Ticket actions.
const (
	ActionNone Action = ""
	ActionSell Action = "SELL"
	ActionBuy  Action = "BUY"
)

// Wear is the condition grade of a skin.
type Wear string

// Wear grades from best to worst.
const (
	WearNone          Wear = ""
	WearFactoryNew    Wear = "FN"
	WearMinimalWear   Wear = "MW"
	WearFieldTested   Wear = "FT"
	WearWellWorn      Wear = "WW"
	WearBattleScarred Wear = "BS"
)

// Wears lists the selectable grades in display order.
var Wears = []Wear{WearFactoryNew, WearMinimalWear, WearFieldTested, WearWellWorn, WearBattleScarred}

// Name returns the full English label of the grade.
func (w Wear) Name() string {
	switch w {
	case WearFactoryNew:
		return "Factory New"
	case WearMinimalWear:
		return "Minimal Wear"
	case WearFieldTested:
		return "Field-Tested"
	case WearWellWorn:
		return "Well-Worn"
	case WearBattleScarred:
		return "Battle-Scarred"
	default:
		return ""
	}
}

const statTrakPrefix = "ST_"

// WearCode encodes a grade with an optional StatTrak marker, e.g. "ST_FT".
func WearCode(w Wear, statTrak bool) string {
	if statTrak {
		return statTrakPrefix + string(w)
	}
	return string(w)
}

// ParseWearCode decodes a value produced by WearCode.
func ParseWearCode(code string) (Wear, bool, error) {
	st := strings.HasPrefix(code, statTrakPrefix)
	w := Wear(strings.TrimPrefix(code, statTrakPrefix))
	for _, known := range Wears {
		if w == known {
			return w, st, nil
		}
	}
	return WearNone, false, fmt.Errorf("unknown wear code %q", code)
}

// TicketItem is one line of a sell request.
type TicketItem struct {
	Candidate
	Wear     Wear `json:"wear,omitempty"`
	StatTrak bool `json:"stattrak,omitempty"`
	Quantity int  `json:"quantity"`
}

// Line renders the item for summaries, e.g. "AK-47 | Redline (ST FT) x1".
func (it TicketItem) Line() string {
	var b strings.Builder
	b.WriteString(it.Name)
	switch {
	case it.Wear != WearNone && it.StatTrak:
		fmt.Fprintf(&b, " (ST %s)", it.Wear)
	case it.Wear != WearNone:
		fmt.Fprintf(&b, " (%s)", it.Wear)
	}
	qty := it.Quantity
	if qty < 1 {
		qty = 1
	}
	fmt.Fprintf(&b, " x%d", qty)
	return b.String()
}

// Ticket is the per-channel conversation state of one ticket.
type Ticket struct {
	ChannelID     string
	OwnerID       string
	Ref           string
	Lang          Lang
	PaymentMethod string
	Action        Action
	Items         []TicketItem
	Pending       []Candidate // last search results offered to the owner
	Draft         *TicketItem // item awaiting StatTrak, wear or quantity
	Extra         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Clone returns a deep copy so callers never share slices with the store.
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	c := *t
	c.Items = append([]TicketItem(nil), t.Items...)
	c.Pending = append([]Candidate(nil), t.Pending...)
	if t.Draft != nil {
		d := *t.Draft
		c.Draft = &d
	}
	return &c
}
