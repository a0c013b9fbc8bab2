package discord

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/xentee/skinticket/internal/domain/model"
)

// Custom IDs of every button, select and modal the wizard emits.
const (
	idOpenTicket   = "open_ticket"
	idLangEN       = "lang_EN"
	idLangFR       = "lang_FR"
	idPayOpen      = "pm_open"
	idPayModal     = "pm_modal"
	idPayText      = "pm_text"
	idActSell      = "act_SELL"
	idActBuy       = "act_BUY"
	idAddItemOpen  = "add_item_open"
	idAddItemModal = "add_item_modal"
	idQueryText    = "q_text"
	idPickItem     = "pick_item"
	idQtyModal     = "qty_modal"
	idQtyText      = "qty_text"
	idStatTrakYes  = "st_yes"
	idStatTrakNo   = "st_no"
	idPickWear     = "pick_wear"
	idAddDone      = "add_done"
	idExtraModal   = "extra_modal"
	idExtraText    = "extra_text"
	idGoFetch      = "go_fetch"
)

// Discord limits.
const (
	maxSelectOptions = 25
	maxOptionLabel   = 100
	maxContent       = 2000
	maxExtraLength   = 500
	maxQuantity      = 1000
)

func button(id, label string, style discordgo.ButtonStyle) discordgo.Button {
	return discordgo.Button{CustomID: id, Label: label, Style: style}
}

func row(components ...discordgo.MessageComponent) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: components}
}

func textInput(id, label string, style discordgo.TextInputStyle, required bool, maxLen int) discordgo.ActionsRow {
	return row(discordgo.TextInput{
		CustomID:  id,
		Label:     label,
		Style:     style,
		Required:  required,
		MaxLength: maxLen,
	})
}

func reply(content string, components ...discordgo.MessageComponent) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Components: components},
	}
}

func ephemeral(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Flags: discordgo.MessageFlagsEphemeral},
	}
}

func deferEphemeral() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}
}

func modal(id, title string, inputs ...discordgo.MessageComponent) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{CustomID: id, Title: title, Components: inputs},
	}
}

// modalValues flattens a modal submission into input ID -> value.
// Rows may arrive as values or pointers depending on how they were decoded.
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	out := make(map[string]string)
	for _, comp := range data.Components {
		var r *discordgo.ActionsRow
		switch v := comp.(type) {
		case discordgo.ActionsRow:
			r = &v
		case *discordgo.ActionsRow:
			r = v
		default:
			continue
		}
		for _, inner := range r.Components {
			switch ti := inner.(type) {
			case *discordgo.TextInput:
				out[ti.CustomID] = ti.Value
			case discordgo.TextInput:
				out[ti.CustomID] = ti.Value
			}
		}
	}
	return out
}

func categoryTag(c model.Category) string {
	switch c {
	case model.CategoryAgent:
		return " (Agent)"
	case model.CategoryGloves:
		return " (Gloves)"
	case model.CategoryCase:
		return " (Case)"
	default:
		return ""
	}
}

// candidateOptions renders up to 25 select options whose values index
// into the offered slice.
func candidateOptions(cands []model.Candidate) []discordgo.SelectMenuOption {
	n := min(len(cands), maxSelectOptions)
	out := make([]discordgo.SelectMenuOption, n)
	for i := 0; i < n; i++ {
		out[i] = discordgo.SelectMenuOption{
			Label: truncate(cands[i].Name+categoryTag(cands[i].Category), maxOptionLabel),
			Value: strconv.Itoa(i),
		}
	}
	return out
}

func candidateLines(cands []model.Candidate) string {
	var b strings.Builder
	for i, c := range cands {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(c.Name)
		b.WriteString(categoryTag(c.Category))
	}
	return b.String()
}

func wearOptions(statTrak bool) []discordgo.SelectMenuOption {
	out := make([]discordgo.SelectMenuOption, len(model.Wears))
	for i, w := range model.Wears {
		out[i] = discordgo.SelectMenuOption{
			Label: w.Name() + " (" + string(w) + ")",
			Value: model.WearCode(w, statTrak),
		}
	}
	return out
}

func itemLines(items []model.TicketItem) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "• " + it.Line()
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// ticketChannelName builds "ticket-<username>-<discriminator>". Users
// without a legacy discriminator get the last four digits of their ID.
func ticketChannelName(u *discordgo.User) string {
	var b strings.Builder
	for _, r := range strings.ToLower(u.Username) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	base := truncate(b.String(), 12)
	if base == "" {
		base = "user"
	}
	suffix := u.Discriminator
	if suffix == "" || suffix == "0" {
		suffix = u.ID
		if len(suffix) > 4 {
			suffix = suffix[len(suffix)-4:]
		}
	}
	return "ticket-" + base + "-" + suffix
}
