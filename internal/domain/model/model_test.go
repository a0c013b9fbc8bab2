package model_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/xentee/skinticket/internal/domain/model"
)

func TestCandidateKey(t *testing.T) {
	convey.Convey("Given candidates with and without identifiers", t, func() {
		withID := model.Candidate{Name: "AK-47 | Redline", MarketIdentifier: "AK-47 | Redline (Field-Tested)"}
		nameOnly := model.Candidate{Name: "Sport Gloves | Vice"}

		convey.Convey("Then the key prefers the identifier and folds case", func() {
			convey.So(withID.Key(), convey.ShouldEqual, "ak-47 | redline (field-tested)")
			convey.So(nameOnly.Key(), convey.ShouldEqual, "sport gloves | vice")
		})

		convey.Convey("Then unknown categories parse as skin", func() {
			convey.So(model.ParseCategory(" Gloves "), convey.ShouldEqual, model.CategoryGloves)
			convey.So(model.ParseCategory("sticker"), convey.ShouldEqual, model.CategorySkin)
		})
	})
}

func TestWearCodes(t *testing.T) {
	convey.Convey("Given wear codes", t, func() {
		convey.Convey("When encoding and decoding with StatTrak", func() {
			code := model.WearCode(model.WearFieldTested, true)
			w, st, err := model.ParseWearCode(code)

			convey.So(code, convey.ShouldEqual, "ST_FT")
			convey.So(err, convey.ShouldBeNil)
			convey.So(w, convey.ShouldEqual, model.WearFieldTested)
			convey.So(st, convey.ShouldBeTrue)
			convey.So(w.Name(), convey.ShouldEqual, "Field-Tested")
		})

		convey.Convey("When decoding garbage", func() {
			_, _, err := model.ParseWearCode("ST_XX")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestTicketItemLine(t *testing.T) {
	convey.Convey("Given ticket items", t, func() {
		skin := model.TicketItem{Candidate: model.Candidate{Name: "AWP | Asiimov"}, Wear: model.WearFieldTested, StatTrak: true, Quantity: 1}
		crate := model.TicketItem{Candidate: model.Candidate{Name: "Kilowatt Case", Category: model.CategoryCase}, Quantity: 40}
		agent := model.TicketItem{Candidate: model.Candidate{Name: "Sir Bloody Darryl"}}

		convey.So(skin.Line(), convey.ShouldEqual, "AWP | Asiimov (ST FT) x1")
		convey.So(crate.Line(), convey.ShouldEqual, "Kilowatt Case x40")
		convey.So(agent.Line(), convey.ShouldEqual, "Sir Bloody Darryl x1")
	})
}

func TestTicketClone(t *testing.T) {
	convey.Convey("Given a ticket with items and a draft", t, func() {
		orig := &model.Ticket{
			ChannelID: "c1",
			Items:     []model.TicketItem{{Candidate: model.Candidate{Name: "a"}}},
			Pending:   []model.Candidate{{Name: "b"}},
			Draft:     &model.TicketItem{Candidate: model.Candidate{Name: "c"}},
		}

		convey.Convey("When the clone is mutated", func() {
			c := orig.Clone()
			c.Items[0].Name = "changed"
			c.Pending = append(c.Pending, model.Candidate{Name: "d"})
			c.Draft.Name = "changed"

			convey.Convey("Then the original is untouched", func() {
				convey.So(orig.Items[0].Name, convey.ShouldEqual, "a")
				convey.So(len(orig.Pending), convey.ShouldEqual, 1)
				convey.So(orig.Draft.Name, convey.ShouldEqual, "c")
			})
		})

		convey.So(model.ParseLang("fr"), convey.ShouldEqual, model.LangFR)
		convey.So(model.ParseLang("de"), convey.ShouldEqual, model.LangEN)
	})
}
