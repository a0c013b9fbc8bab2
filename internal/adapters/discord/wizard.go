package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/xentee/skinticket/internal/adapters/repository"
	"github.com/xentee/skinticket/internal/domain/model"
	"github.com/xentee/skinticket/pkg/logger"
	"github.com/xentee/skinticket/pkg/metrics"
)

// Interaction kinds and outcomes recorded per handled interaction.
const (
	kindComponent = "component"
	kindModal     = "modal"

	outcomeOK        = "ok"
	outcomeDuplicate = "duplicate"
	outcomeNoSession = "no_session"
	outcomeError     = "error"
)

var (
	errNoSession   = errors.New("ticket session missing")
	errContextLost = errors.New("no item awaiting details")
)

// Wizard walks a ticket owner from language choice to the request summary.
// It is safe for concurrent use; per-ticket state lives in the session store.
type Wizard struct {
	session Session
	svc     Service
	msgs    *Messages
	cfg     settings
	logger  logger.Logger

	mu        sync.RWMutex
	botUserID string
}

// NewWizard creates a Wizard answering through s.
func NewWizard(s Session, svc Service, opts ...Option) *Wizard {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newWizard(s, svc, cfg)
}

func newWizard(s Session, svc Service, cfg settings) *Wizard {
	return &Wizard{
		session: s,
		svc:     svc,
		msgs:    NewMessages(),
		cfg:     cfg,
		logger:  cfg.logger,
	}
}

// SetBotUserID records the bot's own user so ticket channels grant it access.
func (w *Wizard) SetBotUserID(id string) {
	w.mu.Lock()
	w.botUserID = id
	w.mu.Unlock()
}

func (w *Wizard) botUser() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.botUserID
}

// Handle processes one interaction. Interaction IDs already handled are
// ignored; a failed step forgets the ID so a retry goes through.
func (w *Wizard) Handle(ctx context.Context, i *discordgo.Interaction) {
	kind, customID := classify(i)
	if kind == "" {
		return
	}
	if w.svc.SeenAndRecord(ctx, i.ID) {
		metrics.RecordInteraction(kind, outcomeDuplicate)
		w.logger.Debug(ctx, "duplicate interaction ignored",
			logger.String("interaction", i.ID),
			logger.String("customID", customID))
		return
	}

	err := w.dispatch(ctx, i, customID)
	switch {
	case err == nil:
		metrics.RecordInteraction(kind, outcomeOK)
	case errors.Is(err, errNoSession):
		metrics.RecordInteraction(kind, outcomeNoSession)
		w.logger.Info(ctx, "interaction without ticket session",
			logger.String("channel", i.ChannelID),
			logger.String("customID", customID))
		_ = w.session.InteractionRespond(i, ephemeral(w.bilingual(msgSessionMissing)), discordgo.WithContext(ctx))
	default:
		metrics.RecordInteraction(kind, outcomeError)
		metrics.RecordErrorByComponent("discord", customID)
		w.logger.Error(ctx, "interaction failed",
			logger.String("channel", i.ChannelID),
			logger.String("customID", customID),
			logger.Error(err))
		w.svc.Unrecord(ctx, i.ID)
		_ = w.session.InteractionRespond(i, ephemeral(w.bilingual(msgError)), discordgo.WithContext(ctx))
	}
}

func classify(i *discordgo.Interaction) (kind, customID string) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		return kindComponent, i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		return kindModal, i.ModalSubmitData().CustomID
	default:
		return "", ""
	}
}

func (w *Wizard) dispatch(ctx context.Context, i *discordgo.Interaction, customID string) error {
	if i.Type == discordgo.InteractionModalSubmit {
		values := modalValues(i.ModalSubmitData())
		switch customID {
		case idPayModal:
			return w.submitPayment(ctx, i, values[idPayText])
		case idAddItemModal:
			return w.submitSearch(ctx, i, values[idQueryText])
		case idQtyModal:
			return w.submitQuantity(ctx, i, values[idQtyText])
		case idExtraModal:
			return w.submitExtra(ctx, i, values[idExtraText])
		}
		return fmt.Errorf("%w: modal %s", ErrUnknownAction, customID)
	}

	data := i.MessageComponentData()
	switch customID {
	case idOpenTicket:
		return w.openTicket(ctx, i)
	case idLangEN, idLangFR:
		return w.pickLanguage(ctx, i, model.ParseLang(strings.TrimPrefix(customID, "lang_")))
	case idPayOpen:
		return w.askPayment(ctx, i)
	case idActSell:
		return w.pickAction(ctx, i, model.ActionSell)
	case idActBuy:
		return w.pickAction(ctx, i, model.ActionBuy)
	case idAddItemOpen:
		return w.askSearch(ctx, i)
	case idPickItem:
		return w.pickItem(ctx, i, data.Values)
	case idStatTrakYes, idStatTrakNo:
		return w.pickStatTrak(ctx, i, customID == idStatTrakYes)
	case idPickWear:
		return w.pickWear(ctx, i, data.Values)
	case idAddDone:
		return w.askExtra(ctx, i)
	case idGoFetch:
		return w.fetchEstimate(ctx, i)
	}
	return fmt.Errorf("%w: component %s", ErrUnknownAction, customID)
}

// openTicket provisions the private channel and posts the language picker.
func (w *Wizard) openTicket(ctx context.Context, i *discordgo.Interaction) error {
	user := interactionUser(i)
	if user == nil {
		return fmt.Errorf("%w: interaction has no user", ErrUnknownAction)
	}
	store := w.svc.Sessions()
	if store == nil {
		return errNoSession
	}
	if err := w.session.InteractionRespond(i, deferEphemeral(), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("defer open ticket: %w", err)
	}

	guildID := w.cfg.guildID
	if guildID == "" {
		guildID = i.GuildID
	}
	ch, err := w.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 ticketChannelName(user),
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("Ticket of %s (%s)", user.Username, w.cfg.brand),
		ParentID:             w.cfg.categoryID,
		PermissionOverwrites: w.overwrites(guildID, user.ID),
	}, discordgo.WithContext(ctx))
	if err != nil {
		w.editContent(ctx, i, w.msgs.Text(model.LangEN, msgTicketFailed))
		return fmt.Errorf("create ticket channel: %w", err)
	}

	now := time.Now()
	t := &model.Ticket{
		ChannelID: ch.ID,
		OwnerID:   user.ID,
		Ref:       newRef(),
		Lang:      model.LangEN,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.Create(ctx, t); err != nil {
		return fmt.Errorf("create ticket session: %w", err)
	}
	metrics.RecordTicketOpened()
	w.logger.Info(ctx, "ticket opened",
		logger.String("channel", ch.ID),
		logger.String("owner", user.ID),
		logger.String("ref", t.Ref))

	mention := "<@" + user.ID + ">"
	if w.cfg.staffRoleID != "" {
		mention += " <@&" + w.cfg.staffRoleID + ">"
	}
	_, err = w.session.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Content: mention,
		Embeds:  []*discordgo.MessageEmbed{{Title: langTitle, Description: langDescription}},
		Components: []discordgo.MessageComponent{row(
			button(idLangEN, "🇺🇸", discordgo.SecondaryButton),
			button(idLangFR, "🇫🇷", discordgo.SecondaryButton),
		)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("post language picker: %w", err)
	}

	w.editContent(ctx, i, w.msgs.Text(model.LangEN, msgTicketCreated, ch.ID))
	return nil
}

// overwrites hides the channel from @everyone (whose role ID is the guild
// ID) and opens it to the owner, the staff role and the bot.
func (w *Wizard) overwrites(guildID, ownerID string) []*discordgo.PermissionOverwrite {
	const member = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory
	out := []*discordgo.PermissionOverwrite{
		{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: ownerID, Type: discordgo.PermissionOverwriteTypeMember, Allow: member},
	}
	if w.cfg.staffRoleID != "" {
		out = append(out, &discordgo.PermissionOverwrite{
			ID: w.cfg.staffRoleID, Type: discordgo.PermissionOverwriteTypeRole,
			Allow: member | discordgo.PermissionManageMessages,
		})
	}
	if bot := w.botUser(); bot != "" {
		out = append(out, &discordgo.PermissionOverwrite{
			ID: bot, Type: discordgo.PermissionOverwriteTypeMember,
			Allow: member | discordgo.PermissionManageChannels,
		})
	}
	return out
}

func (w *Wizard) pickLanguage(ctx context.Context, i *discordgo.Interaction, lang model.Lang) error {
	t, err := w.save(ctx, i.ChannelID, func(t *model.Ticket) error {
		t.Lang = lang
		return nil
	})
	if err != nil {
		return err
	}
	return w.respond(ctx, i, reply(w.msgs.Text(t.Lang, msgAskPayment),
		row(button(idPayOpen, w.msgs.Text(t.Lang, btnPayment), discordgo.PrimaryButton))))
}

func (w *Wizard) askPayment(ctx context.Context, i *discordgo.Interaction) error {
	t, err := w.load(ctx, i.ChannelID)
	if err != nil {
		return err
	}
	return w.respond(ctx, i, modal(idPayModal, w.msgs.Text(t.Lang, modalPaymentTitle),
		textInput(idPayText, w.msgs.Text(t.Lang, inputPaymentLabel), discordgo.TextInputShort, true, 100)))
}

func (w *Wizard) submitPayment(ctx context.Context, i *discordgo.Interaction, raw string) error {
	method := strings.TrimSpace(raw)
	if method == "" {
		return w.pickLanguageAgain(ctx, i)
	}
	t, err := w.save(ctx, i.ChannelID, func(t *model.Ticket) error {
		t.PaymentMethod = method
		return nil
	})
	if err != nil {
		return err
	}
	return w.respond(ctx, i, reply(w.msgs.Text(t.Lang, msgAskAction, w.cfg.brand, w.cfg.brand),
		row(
			button(idActSell, w.msgs.Text(t.Lang, btnSell), discordgo.SuccessButton),
			button(idActBuy, w.msgs.Text(t.Lang, btnBuy), discordgo.PrimaryButton),
		)))
}

// pickLanguageAgain re-offers the payment button after a blank submission.
func (w *Wizard) pickLanguageAgain(ctx context.Context, i *discordgo.Interaction) error {
	t, err := w.load(ctx, i.ChannelID)
	if err != nil {
		return err
	}
	resp := reply(w.msgs.Text(t.Lang, msgAskPayment),
		row(button(idPayOpen, w.msgs.Text(t.Lang, btnPayment), discordgo.PrimaryButton)))
	resp.Data.Flags = discordgo.MessageFlagsEphemeral
	return w.respond(ctx, i, resp)
}

func (w *Wizard) pickAction(ctx context.Context, i *discordgo.Interaction, action model.Action) error {
	t, err := w.save(ctx, i.ChannelID, func(t *model.Ticket) error {
		t.Action = action
		return nil
	})
	if err != nil {
		return err
	}
	if action == model.ActionBuy {
		return w.respond(ctx, i, reply(w.msgs.Text(t.Lang, msgBuyPlaceholder)))
	}
	return w.respond(ctx, i, reply(w.msgs.Text(t.Lang, msgAddItem),
		row(
			button(idAddItemOpen, w.msgs.Text(t.Lang, btnSearch), discordgo.SuccessButton),
			button(idAddDone, w.msgs.Text(t.Lang, btnDone), discordgo.SecondaryButton),
		)))
}

func (w *Wizard) askSearch(ctx context.Context, i *discordgo.Interaction) error {
	t, err := w.load(ctx, i.ChannelID)
	if err != nil {
		return err
	}
	return w.respond(ctx, i, modal(idAddItemModal, w.msgs.Text(t.Lang, modalSearchTitle),
		textInput(idQueryText, w.msgs.Text(t.Lang, inputSearchLabel), discordgo.TextInputShort, true, w.cfg.maxQueryLength)))
}

// submitSearch defers the reply, resolves the query and offers the ranked
// candidates as a select whose values index the session's pending list.
func (w *Wizard) submitSearch(ctx context.Context, i *discordgo.Interaction, raw string) error {
	t, err := w.load(ctx, i.ChannelID)
	if err != nil {
		return err
	}
	query := strings.TrimSpace(raw)
	if query == "" || utf8.RuneCountInString(query) > w.cfg.maxQueryLength {
		return w.respond(ctx, i, ephemeral(w.msgs.Text(t.Lang, msgSearchInvalid, strconv.Itoa(w.cfg.maxQueryLength))))
	}
	if err := w.respond(ctx, i, deferEphemeral()); err != nil {
		return err
	}

	cands := w.svc.Search(ctx, query)
	if len(cands) > maxSelectOptions {
		cands = cands[:maxSelectOptions]
	}
	w.logger.Debug(ctx, "item search",
		logger.String("channel", i.ChannelID),
		logger.String("query", query),
		logger.Int("candidates", len(cands)))

	t, err = w.save(ctx, i.ChannelID, func(t *model.Ticket) error {
		t.Pending = cands
		t.Draft = nil
		return nil
	})
	if errors.Is(err, errNoSession) {
		w.editContent(ctx, i, w.bilingual(msgSessionMissing))
		return nil
	}
	if err != nil {
		return err
	}

	retry := row(button(idAddItemOpen, w.msgs.Text(t.Lang, btnNewSearch), discordgo.SecondaryButton))
	if len(cands) == 0 {
		return w.edit(ctx, i, w.msgs.Text(t.Lang, msgNoResults), retry)
	}
	selectRow := row(discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    idPickItem,
		Placeholder: w.msgs.Text(t.Lang, selectItemHint),
		Options:     candidateOptions(cands),
	})
	content := truncate(w.msgs.Text(t.Lang, msgResults)+"\n"+candidateLines(cands), maxContent)
	return w.edit(ctx, i, content, selectRow, retry)
}

// pickItem routes the chosen candidate by category: agents are added at
// once, cases ask for a quantity, gloves for a wear and skins for StatTrak.
func (w *Wizard) pickItem(ctx context.Context, i *discordgo.Interaction, values []string) error {
	t, err := w.load(ctx, i.ChannelID)
	if err != nil {
		return err
	}
	idx := -1
	if len(values) > 0 {
		if n, convErr := strconv.Atoi(values[0]); convErr == nil {
			idx = n
		}
	}
	if idx < 0 || idx >= len(t.Pending) {
		return w.respond(ctx, i, ephemeral(w.msgs.Text(t.Lang, msgInvalidSelection)))
	}
	draft := model.TicketItem{Candidate: t.Pending[idx], Quantity: 1}

	if draft.Category == model.CategoryAgent {
		t, err = w.save(ctx, i.ChannelID, func(t *model.Ticket) error {
			t.Items = append(t.Items, draft)
			t.Draft = nil
			return nil
		})
		if err != nil {
			return err
		}
		return w.added(ctx, i, t, draft)
	}

	t, err = w.save(ctx, i.ChannelID, func(t *model.Ticket) error {
		t.Draft = &draft
		return nil
	})
	if err != nil {
		return err
	}

	switch draft.Category {
	case model.CategoryCase:
		return w.respond(ctx, i, modal(idQtyModal, w.msgs.Text(t.Lang, modalQtyTitle),
			textInput(idQtyText, w.msgs.Text(t.Lang, inputQtyLabel), discordgo.TextInputShort, true, 4)))
	case model.CategoryGloves:
		return w.askWear(ctx, i, t.Lang, false)
	default:
		return w.respond(ctx, i, reply(w.msgs.Text(t.Lang, msgAskStatTrak),
			row(
				button(idStatTrakYes, w.msgs.Text(t.Lang, btnStatTrakYes), discordgo.SuccessButton),
				button(idStatTrakNo, w.msgs.Text(t.Lang, btnStatTrakNo), discordgo.SecondaryButton),
			)))
	}
}

func (w *Wizard) pickStatTrak(ctx context.Context, i *discordgo.Interaction, statTrak bool) error {
	t, err := w.save(ctx, i.ChannelID, func(t *model.Ticket) error {
		if t.Draft == nil || t.Draft.Category != model.CategorySkin {
			return errContextLost
		}
		t.Draft.StatTrak = statTrak
		return nil
	})
	if errors.Is(err, errContextLost) {
		return w.contextLost(ctx, i)
	}
	if err != nil {
		return err
	}
	return w.askWear(ctx, i, t.Lang, statTrak)
}

func (w *Wizard) askWear(ctx context.Context, i *discordgo.Interaction, lang model.Lang, statTrak bool) error {
	return w.respond(ctx, i, reply(w.msgs.Text(lang, msgAskWear),
		row(discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    idPickWear,
			Placeholder: w.msgs.Text(lang, selectWearHint),
			Options:     wearOptions(statTrak),
		})))
}

func (w *Wizard) pickWear(ctx context.Context, i *discordgo.Interaction, values []string) error {
	code := ""
	if len(values) > 0 {
		code = values[0]
	}
	wear, statTrak, parseErr := model.ParseWearCode(code)

	var item model.TicketItem
	t, err := w.save(ctx, i.ChannelID, func(t *model.Ticket) error {
		if t.Draft == nil || t.Draft.Category == model.CategoryAgent || t.Draft.Category == model.CategoryCase {
			return errContextLost
		}
		if parseErr != nil {
			return parseErr
		}
		item = *t.Draft
		item.Wear = wear
		item.StatTrak = statTrak && item.Category == model.CategorySkin
		t.Items = append(t.Items, item)
		t.Draft = nil
		return nil
	})
	switch {
	case errors.Is(err, errContextLost):
		return w.contextLost(ctx, i)
	case parseErr != nil && errors.Is(err, parseErr):
		return w.respond(ctx, i, ephemeral(w.msgs.Text(w.lang(ctx, i), msgInvalidSelection)))
	case err != nil:
		return err
	}
	return w.added(ctx, i, t, item)
}

func (w *Wizard) submitQuantity(ctx context.Context, i *discordgo.Interaction, raw string) error {
	qty, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil || qty < 1 || qty > maxQuantity {
		t, err := w.load(ctx, i.ChannelID)
		if err != nil {
			return err
		}
		return w.respond(ctx, i, ephemeral(w.msgs.Text(t.Lang, msgInvalidQty)))
	}

	var item model.TicketItem
	t, err := w.save(ctx, i.ChannelID, func(t *model.Ticket) error {
		if t.Draft == nil || t.Draft.Category != model.CategoryCase {
			return errContextLost
		}
		item = *t.Draft
		item.Quantity = qty
		t.Items = append(t.Items, item)
		t.Draft = nil
		return nil
	})
	if errors.Is(err, errContextLost) {
		return w.contextLost(ctx, i)
	}
	if err != nil {
		return err
	}
	return w.added(ctx, i, t, item)
}

// added confirms an item and shows the running list.
func (w *Wizard) added(ctx context.Context, i *discordgo.Interaction, t *model.Ticket, item model.TicketItem) error {
	metrics.RecordTicketItem(string(item.Category))
	content := truncate(w.msgs.Text(t.Lang, msgAdded, item.Line())+"\n\n"+
		w.msgs.Text(t.Lang, msgItemsHeader)+"\n"+itemLines(t.Items), maxContent)
	return w.respond(ctx, i, reply(content,
		row(
			button(idAddItemOpen, w.msgs.Text(t.Lang, btnAddAnother), discordgo.PrimaryButton),
			button(idAddDone, w.msgs.Text(t.Lang, btnDone), discordgo.SuccessButton),
		)))
}

func (w *Wizard) askExtra(ctx context.Context, i *discordgo.Interaction) error {
	t, err := w.load(ctx, i.ChannelID)
	if err != nil {
		return err
	}
	if len(t.Items) == 0 {
		return w.respond(ctx, i, ephemeral(w.msgs.Text(t.Lang, msgNoItems)))
	}
	return w.respond(ctx, i, modal(idExtraModal, w.msgs.Text(t.Lang, modalExtraTitle),
		textInput(idExtraText, w.msgs.Text(t.Lang, inputExtraLabel), discordgo.TextInputParagraph, false, maxExtraLength)))
}

func (w *Wizard) submitExtra(ctx context.Context, i *discordgo.Interaction, raw string) error {
	extra := truncate(strings.TrimSpace(raw), maxExtraLength)
	t, err := w.save(ctx, i.ChannelID, func(t *model.Ticket) error {
		t.Extra = extra
		return nil
	})
	if err != nil {
		return err
	}
	w.logger.Info(ctx, "ticket summary ready",
		logger.String("channel", t.ChannelID),
		logger.String("ref", t.Ref),
		logger.Int("items", len(t.Items)))
	return w.respond(ctx, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{w.summary(t)},
			Components: []discordgo.MessageComponent{
				row(button(idGoFetch, w.msgs.Text(t.Lang, btnEstimate), discordgo.PrimaryButton)),
			},
		},
	})
}

// summary renders the request recap embed.
func (w *Wizard) summary(t *model.Ticket) *discordgo.MessageEmbed {
	payment := t.PaymentMethod
	if payment == "" {
		payment = "-"
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: w.msgs.Text(t.Lang, summaryRef), Value: t.Ref, Inline: true},
		{Name: w.msgs.Text(t.Lang, summaryLang), Value: string(t.Lang), Inline: true},
		{Name: w.msgs.Text(t.Lang, summaryPayment), Value: payment, Inline: true},
		{Name: w.msgs.Text(t.Lang, summaryItems), Value: truncate(itemLines(t.Items), 1024)},
	}
	if t.Extra != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: w.msgs.Text(t.Lang, summaryExtra), Value: t.Extra})
	}
	return &discordgo.MessageEmbed{
		Title:     w.msgs.Text(t.Lang, summaryTitle),
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func (w *Wizard) fetchEstimate(ctx context.Context, i *discordgo.Interaction) error {
	t, err := w.load(ctx, i.ChannelID)
	if err != nil {
		return err
	}
	return w.respond(ctx, i, reply(w.msgs.Text(t.Lang, msgFetchPlaceholder)))
}

func (w *Wizard) contextLost(ctx context.Context, i *discordgo.Interaction) error {
	return w.respond(ctx, i, ephemeral(w.msgs.Text(w.lang(ctx, i), msgContextLost)))
}

// lang is the ticket language, English when the session is gone.
func (w *Wizard) lang(ctx context.Context, i *discordgo.Interaction) model.Lang {
	if t, err := w.load(ctx, i.ChannelID); err == nil {
		return t.Lang
	}
	return model.LangEN
}

func (w *Wizard) load(ctx context.Context, channelID string) (*model.Ticket, error) {
	store := w.svc.Sessions()
	if store == nil {
		return nil, errNoSession
	}
	t, err := store.Get(ctx, channelID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, errNoSession
	}
	return t, err
}

func (w *Wizard) save(ctx context.Context, channelID string, fn func(*model.Ticket) error) (*model.Ticket, error) {
	store := w.svc.Sessions()
	if store == nil {
		return nil, errNoSession
	}
	t, err := store.Update(ctx, channelID, fn)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, errNoSession
	}
	return t, err
}

func (w *Wizard) respond(ctx context.Context, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	if err := w.session.InteractionRespond(i, resp, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("respond: %w", err)
	}
	return nil
}

func (w *Wizard) edit(ctx context.Context, i *discordgo.Interaction, content string, components ...discordgo.MessageComponent) error {
	if _, err := w.session.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
	}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit response: %w", err)
	}
	return nil
}

func (w *Wizard) editContent(ctx context.Context, i *discordgo.Interaction, content string) {
	if _, err := w.session.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content}, discordgo.WithContext(ctx)); err != nil {
		w.logger.Warn(ctx, "edit deferred response failed", logger.Error(err))
	}
}

func (w *Wizard) bilingual(key string) string {
	return w.msgs.Text(model.LangEN, key) + "\n" + w.msgs.Text(model.LangFR, key)
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// newRef returns the short ticket reference shown to staff.
func newRef() string {
	id := uuid.NewString()
	return strings.ToUpper(id[:8])
}
