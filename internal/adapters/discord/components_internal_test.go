package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/xentee/skinticket/internal/domain/model"
)

func TestTicketChannelName(t *testing.T) {
	Convey("Given Discord users", t, func() {
		Convey("Then a legacy discriminator is kept", func() {
			u := &discordgo.User{ID: "42", Username: "Trader", Discriminator: "0420"}
			So(ticketChannelName(u), ShouldEqual, "ticket-trader-0420")
		})

		Convey("Then long names are cut to twelve characters", func() {
			u := &discordgo.User{ID: "987654321", Username: "averyveryverylongname"}
			So(ticketChannelName(u), ShouldEqual, "ticket-averyveryver-4321")
		})

		Convey("Then names without usable characters fall back to user", func() {
			u := &discordgo.User{ID: "77", Username: "★★★", Discriminator: "0"}
			So(ticketChannelName(u), ShouldEqual, "ticket-user-77")
		})
	})
}

func TestModalValues(t *testing.T) {
	Convey("Given a modal submission with value and pointer rows", t, func() {
		data := discordgo.ModalSubmitInteractionData{
			CustomID: idPayModal,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: idPayText, Value: "Revolut"},
				}},
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: idExtraText, Value: "float 0.01"},
				}},
				discordgo.Button{CustomID: "ignored"},
			},
		}

		Convey("Then every input is found", func() {
			So(modalValues(data), ShouldResemble, map[string]string{
				idPayText:   "Revolut",
				idExtraText: "float 0.01",
			})
		})
	})
}

func TestOptionLabels(t *testing.T) {
	Convey("Given candidates of every category", t, func() {
		cands := []model.Candidate{
			{Name: "AK-47 | Redline", Category: model.CategorySkin},
			{Name: "Hand Wraps | Slaughter", Category: model.CategoryGloves},
		}

		Convey("Then only non-skin items carry a suffix", func() {
			opts := candidateOptions(cands)
			So(opts[0].Label, ShouldEqual, "AK-47 | Redline")
			So(opts[1].Label, ShouldEqual, "Hand Wraps | Slaughter (Gloves)")
			So(opts[1].Value, ShouldEqual, "1")
		})

		Convey("Then truncation counts runes", func() {
			So(truncate("★★★★", 2), ShouldEqual, "★★")
			So(truncate("abc", 5), ShouldEqual, "abc")
		})
	})
}
