package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"

	"github.com/xentee/skinticket/internal/adapters/repository"
	"github.com/xentee/skinticket/internal/domain/model"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty session store", t, func() {
		clk := &clock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
		s := repository.NewMemoryStore(repository.WithTTL(time.Hour), repository.WithClock(clk.Now))

		Convey("When a ticket is created", func() {
			err := s.Create(ctx, &model.Ticket{ChannelID: "c1", OwnerID: "u1"})
			So(err, ShouldBeNil)

			Convey("Then it can be read back with timestamps set", func() {
				got, err := s.Get(ctx, "c1")
				So(err, ShouldBeNil)
				So(got.OwnerID, ShouldEqual, "u1")
				So(got.CreatedAt, ShouldEqual, clk.Now())
				So(s.Len(ctx), ShouldEqual, 1)
			})

			Convey("Then creating it again fails", func() {
				err := s.Create(ctx, &model.Ticket{ChannelID: "c1"})
				So(errors.Is(err, repository.ErrSessionExists), ShouldBeTrue)
			})

			Convey("Then mutating a read copy does not leak into the store", func() {
				got, _ := s.Get(ctx, "c1")
				got.Items = append(got.Items, model.TicketItem{Quantity: 3})
				again, _ := s.Get(ctx, "c1")
				So(again.Items, ShouldBeEmpty)
			})

			Convey("When it is updated", func() {
				clk.Advance(time.Minute)
				out, err := s.Update(ctx, "c1", func(t *model.Ticket) error {
					t.Lang = model.LangFR
					t.ChannelID = "hijack"
					return nil
				})

				Convey("Then the change is stored and the key kept", func() {
					So(err, ShouldBeNil)
					So(out.Lang, ShouldEqual, model.LangFR)
					So(out.ChannelID, ShouldEqual, "c1")
					So(out.UpdatedAt, ShouldEqual, clk.Now())
				})
			})

			Convey("When an update fails", func() {
				boom := errors.New("boom")
				_, err := s.Update(ctx, "c1", func(t *model.Ticket) error {
					t.PaymentMethod = "paypal"
					return boom
				})

				Convey("Then the session is unchanged", func() {
					So(errors.Is(err, boom), ShouldBeTrue)
					got, _ := s.Get(ctx, "c1")
					So(got.PaymentMethod, ShouldBeEmpty)
				})
			})

			Convey("When it is deleted", func() {
				So(s.Delete(ctx, "c1"), ShouldBeNil)

				Convey("Then it is gone", func() {
					_, err := s.Get(ctx, "c1")
					So(errors.Is(err, repository.ErrSessionNotFound), ShouldBeTrue)
					So(errors.Is(s.Delete(ctx, "c1"), repository.ErrSessionNotFound), ShouldBeTrue)
				})
			})
		})

		Convey("When a ticket has no channel", func() {
			err := s.Create(ctx, &model.Ticket{})
			So(errors.Is(err, repository.ErrInvalidSession), ShouldBeTrue)
		})

		Convey("When an unknown channel is updated", func() {
			_, err := s.Update(ctx, "nope", func(*model.Ticket) error { return nil })
			So(errors.Is(err, repository.ErrSessionNotFound), ShouldBeTrue)
		})

		Convey("When sessions go idle past the TTL", func() {
			So(s.Create(ctx, &model.Ticket{ChannelID: "old"}), ShouldBeNil)
			clk.Advance(50 * time.Minute)
			So(s.Create(ctx, &model.Ticket{ChannelID: "fresh"}), ShouldBeNil)
			clk.Advance(20 * time.Minute)

			Convey("Then the idle one is hidden and swept", func() {
				_, err := s.Get(ctx, "old")
				So(errors.Is(err, repository.ErrSessionNotFound), ShouldBeTrue)
				So(s.Sweep(ctx), ShouldEqual, 1)
				So(s.Len(ctx), ShouldEqual, 1)
				_, err = s.Get(ctx, "fresh")
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestMemoryStoreJanitor(t *testing.T) {
	defer goleak.VerifyNone(t)

	Convey("Given a store with a fast janitor", t, func() {
		clk := &clock{now: time.Now()}
		s := repository.NewMemoryStore(
			repository.WithTTL(time.Minute),
			repository.WithJanitorInterval(5*time.Millisecond),
			repository.WithClock(clk.Now),
		)
		ctx := context.Background()
		So(s.Create(ctx, &model.Ticket{ChannelID: "c1"}), ShouldBeNil)

		s.StartJanitor(ctx)
		s.StartJanitor(ctx)
		clk.Advance(2 * time.Minute)

		Convey("Then expired sessions disappear and Close stops the sweeper", func() {
			deadline := time.Now().Add(2 * time.Second)
			for s.Len(ctx) > 0 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			So(s.Len(ctx), ShouldEqual, 0)
			So(s.Close(), ShouldBeNil)
		})
	})
}

func TestMemoryStoreConcurrentUpdates(t *testing.T) {
	Convey("Given one session updated from many goroutines", t, func() {
		ctx := context.Background()
		s := repository.NewMemoryStore()
		So(s.Create(ctx, &model.Ticket{ChannelID: "c1"}), ShouldBeNil)

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _ = s.Update(ctx, "c1", func(t *model.Ticket) error {
					t.Items = append(t.Items, model.TicketItem{Candidate: model.Candidate{Name: fmt.Sprint(i)}, Quantity: 1})
					return nil
				})
			}(i)
		}
		wg.Wait()

		Convey("Then no update is lost", func() {
			got, err := s.Get(ctx, "c1")
			So(err, ShouldBeNil)
			So(len(got.Items), ShouldEqual, 50)
		})
	})
}
