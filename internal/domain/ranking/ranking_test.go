package ranking_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xentee/skinticket/internal/domain/model"
	"github.com/xentee/skinticket/internal/domain/ranking"
)

func skin(name string) model.Candidate {
	return model.Candidate{Name: name, MarketIdentifier: name, Category: model.CategorySkin}
}

func crate(name string) model.Candidate {
	return model.Candidate{Name: name, MarketIdentifier: name, Category: model.CategoryCase}
}

func names(cs []model.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestRankScoring(t *testing.T) {
	Convey("Given the default ranker", t, func() {
		r := ranking.New()

		Convey("When ranking skins for a two word query", func() {
			scored := r.Score("ak redline", []model.Candidate{
				skin("AK-47 | Red Laminate"),
				skin("AK-47 | Redline"),
				skin("Sticker | Redline Pin"),
			})

			Convey("Then token, weapon and adjacency bonuses add up", func() {
				So(len(scored), ShouldEqual, 3)
				So(scored[0].Name, ShouldEqual, "AK-47 | Redline")
				So(scored[0].Score, ShouldEqual, 26)
				So(scored[1].Name, ShouldEqual, "AK-47 | Red Laminate")
				So(scored[1].Score, ShouldEqual, 16)
				So(scored[2].Score, ShouldEqual, 10)
			})
		})

		Convey("When the whole query appears in a name", func() {
			scored := r.Score("  Asiimov ", []model.Candidate{skin("AWP | Asiimov")})

			Convey("Then the full query bonus applies after normalization", func() {
				So(scored[0].Score, ShouldEqual, 50+10+6)
			})
		})

		Convey("When the first two tokens appear together", func() {
			scored := r.Score("hyper beast", []model.Candidate{skin("M4A1-S | Hyper Beast")})

			Convey("Then the adjacency bonus applies", func() {
				So(scored[0].Score, ShouldEqual, 50+20+8+6)
			})
		})

		Convey("When only cases are offered for a query without case words", func() {
			scored := r.Score("kilowatt", []model.Candidate{crate("Revolution Case"), crate("Kilowatt Case")})

			Convey("Then both are kept but penalised", func() {
				So(len(scored), ShouldEqual, 2)
				So(scored[0].Name, ShouldEqual, "Kilowatt Case")
				So(scored[0].Score, ShouldEqual, 50+10-20)
				So(scored[1].Score, ShouldEqual, -20)
			})
		})

		Convey("When glove and knife names only share a prefix with the weapon list", func() {
			scored := r.Score("zzz", []model.Candidate{
				skin("Sport Gloves | Vice"),
				skin("Hand Wraps | Slaughter"),
				skin("★ Shadow Daggers | Fade"),
				skin("Sticker | Crown (Foil)"),
			})

			Convey("Then only the items get the weapon bonus", func() {
				So(scored[0].Score, ShouldEqual, 6)
				So(scored[1].Score, ShouldEqual, 6)
				So(scored[2].Score, ShouldEqual, 6)
				So(scored[3].Score, ShouldEqual, 0)
			})
		})

		Convey("When the candidate name uses full-width characters", func() {
			scored := r.Score("awp", []model.Candidate{skin("ＡＷＰ | Asiimov")})

			Convey("Then NFKC folding lets it match", func() {
				So(scored[0].Score, ShouldEqual, 50+10+6)
			})
		})
	})
}

func TestRankStability(t *testing.T) {
	Convey("Given candidates that tie on score", t, func() {
		in := []model.Candidate{
			skin("Sticker | Alpha"),
			skin("AWP | Asiimov"),
			skin("Sticker | Bravo"),
			skin("Sticker | Charlie"),
		}

		Convey("When ranking for an unrelated query", func() {
			out := ranking.Rank("zzz", in)

			Convey("Then tied entries keep discovery order", func() {
				So(names(out), ShouldResemble, []string{"AWP | Asiimov", "Sticker | Alpha", "Sticker | Bravo", "Sticker | Charlie"})
			})
		})

		Convey("When ranking the same input repeatedly", func() {
			first := ranking.Rank("sticker", in)
			for i := 0; i < 20; i++ {
				So(names(ranking.Rank("sticker", in)), ShouldResemble, names(first))
			}
		})

		Convey("When the ranked result is returned", func() {
			scored := ranking.New().Score("zzz", in)

			Convey("Then each entry remembers its discovery position", func() {
				So(scored[1].Order, ShouldEqual, 0)
				So(scored[2].Order, ShouldEqual, 2)
			})
		})
	})
}

func TestCaseFiltering(t *testing.T) {
	Convey("Given a mix of skins, cases and a case index tile", t, func() {
		tile := crate("Case Index")
		kilowatt := crate("Kilowatt Case")
		tiger := skin("★ Karambit | Tiger Tooth")

		Convey("When the query has no case words and a skin is present", func() {
			out := ranking.Rank("karambit tiger", []model.Candidate{tile, tiger, kilowatt})

			Convey("Then no case entries remain", func() {
				So(names(out), ShouldResemble, []string{"★ Karambit | Tiger Tooth"})
			})
		})

		Convey("When the query has no case words and only cases are present", func() {
			out := ranking.Rank("karambit tiger", []model.Candidate{tile, kilowatt})

			Convey("Then the tile is dropped and the real case retained", func() {
				So(names(out), ShouldResemble, []string{"Kilowatt Case"})
			})
		})

		Convey("When the query asks for a case", func() {
			out := ranking.Rank("kilowatt case", []model.Candidate{tile, tiger, kilowatt})

			Convey("Then cases stay, the tile still goes, and the case ranks first", func() {
				So(names(out), ShouldResemble, []string{"Kilowatt Case", "★ Karambit | Tiger Tooth"})
			})
		})

		Convey("When tiles use the long catalog headings", func() {
			r := ranking.New()
			So(r.IsIndexTile("Weapon Cases & Special Cases"), ShouldBeTrue)
			So(r.IsIndexTile("Operation Cases, Weapon Cases and more"), ShouldBeTrue)
			So(r.IsIndexTile("Kilowatt Case"), ShouldBeFalse)
		})

		Convey("When a skin is named like a tile", func() {
			out := ranking.Rank("case index", []model.Candidate{skin("Case Index Sticker")})

			Convey("Then only case-category tiles are excluded", func() {
				So(len(out), ShouldEqual, 1)
			})
		})
	})
}

func TestCustomRules(t *testing.T) {
	Convey("Given a ranker with custom word lists", t, func() {
		r := ranking.New(ranking.WithRules(ranking.Rules{
			WeaponTokens: []string{"Zeus"},
			CaseHints:    []string{"Capsule"},
		}))

		Convey("Then the custom hint keeps cases", func() {
			out := r.Rank("sticker capsule", []model.Candidate{skin("Zeus x27 | Olympus"), crate("Sticker Capsule")})
			So(names(out), ShouldResemble, []string{"Sticker Capsule", "Zeus x27 | Olympus"})
		})
	})
}
