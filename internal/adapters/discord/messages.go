package discord

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/xentee/skinticket/internal/domain/model"
)

// Message keys. Each key has an English and a French entry.
const (
	msgTicketCreated    = "ticket.created"
	msgTicketFailed     = "ticket.failed"
	msgSessionMissing   = "session.missing"
	msgContextLost      = "session.context_lost"
	msgError            = "error.generic"
	msgAskPayment       = "payment.ask"
	btnPayment          = "payment.button"
	modalPaymentTitle   = "payment.modal_title"
	inputPaymentLabel   = "payment.input_label"
	msgAskAction        = "action.ask"
	btnSell             = "action.sell"
	btnBuy              = "action.buy"
	msgBuyPlaceholder   = "action.buy_placeholder"
	msgAddItem          = "item.add_prompt"
	btnSearch           = "item.search"
	btnNewSearch        = "item.new_search"
	btnAddAnother       = "item.add_another"
	btnDone             = "item.done"
	modalSearchTitle    = "item.modal_title"
	inputSearchLabel    = "item.input_label"
	msgSearchInvalid    = "item.search_invalid"
	msgNoResults        = "item.no_results"
	msgResults          = "item.results"
	selectItemHint      = "item.select_hint"
	msgInvalidSelection = "item.invalid_selection"
	modalQtyTitle       = "qty.modal_title"
	inputQtyLabel       = "qty.input_label"
	msgInvalidQty       = "qty.invalid"
	msgAskStatTrak      = "stattrak.ask"
	btnStatTrakYes      = "stattrak.yes"
	btnStatTrakNo       = "stattrak.no"
	msgAskWear          = "wear.ask"
	selectWearHint      = "wear.select_hint"
	msgAdded            = "item.added"
	msgItemsHeader      = "item.list_header"
	msgNoItems          = "item.none"
	modalExtraTitle     = "extra.modal_title"
	inputExtraLabel     = "extra.input_label"
	summaryTitle        = "summary.title"
	summaryRef          = "summary.ref"
	summaryLang         = "summary.lang"
	summaryPayment      = "summary.payment"
	summaryItems        = "summary.items"
	summaryExtra        = "summary.extra"
	btnEstimate         = "summary.estimate"
	msgFetchPlaceholder = "summary.fetch_placeholder"
)

// Bilingual texts shown before a language is picked.
const (
	panelTitle       = "🎟️ Create my ticket"
	panelDescription = "Click to create a private channel and start.\nClique pour créer un salon privé et commencer."
	panelButton      = "Create my ticket"
	langTitle        = "Choose your language / Choisis ta langue"
	langDescription  = "Pick a language to continue.\nChoisis une langue pour continuer."
)

var texts = map[string][2]string{
	msgTicketCreated:    {"Ticket created: <#%s>", "Ticket créé : <#%s>"},
	msgTicketFailed:     {"Could not create your ticket channel. Please contact staff.", "Impossible de créer ton salon de ticket. Contacte le staff."},
	msgSessionMissing:   {"This ticket session has expired. Open a new ticket from the panel.", "Cette session de ticket a expiré. Ouvre un nouveau ticket depuis le panneau."},
	msgContextLost:      {"Context lost, start again.", "Contexte perdu, recommence."},
	msgError:            {"❌ Something went wrong.", "❌ Une erreur est survenue."},
	msgAskPayment:       {"Click below to enter your payment method.", "Clique ci-dessous pour indiquer ta méthode de paiement."},
	btnPayment:          {"Payment method", "Méthode de paiement"},
	modalPaymentTitle:   {"Payment method", "Méthode de paiement"},
	inputPaymentLabel:   {"Payment method (e.g. Revolut)", "Méthode de paiement (ex: Revolut)"},
	msgAskAction:        {"Do you want to **sell** to %s, or **buy** from %s?", "Tu veux **vendre** à %s, ou **acheter** chez %s ?"},
	btnSell:             {"Sell", "Vendre"},
	btnBuy:              {"Buy", "Acheter"},
	msgBuyPlaceholder:   {"Stock will appear here soon. For now, just type what you're looking for.", "Stock à venir ici. Pour l'instant, écris simplement ce que tu recherches."},
	msgAddItem:          {"Add an item (skin, gloves, **agent**, **case**). Type a few keywords (e.g. \"kara tiger tooth\", \"hand wraps\", \"sir bloody\", \"fracture case\").", "Ajoute un item (skin, gants, **agent**, **caisse**). Tape quelques mots-clés (ex: \"kara tiger tooth\", \"hand wraps\", \"sir bloody\", \"fracture case\")."},
	btnSearch:           {"Search an item", "Rechercher un item"},
	btnNewSearch:        {"New search", "Nouvelle recherche"},
	btnAddAnother:       {"Add another item", "Ajouter un autre item"},
	btnDone:             {"Done", "Terminer"},
	modalSearchTitle:    {"Item search", "Recherche d'item"},
	inputSearchLabel:    {"Keywords (e.g. kara tiger tooth)", "Mots-clés (ex: kara tiger tooth)"},
	msgSearchInvalid:    {"Type between 1 and %s characters.", "Tape entre 1 et %s caractères."},
	msgNoResults:        {"No results. Try other keywords (e.g. \"karambit tiger\", \"sport gloves vice\", \"fracture case\").", "Aucun résultat. Essaie avec d'autres mots-clés (ex: \"karambit tiger\", \"sport gloves vice\", \"fracture case\")."},
	msgResults:          {"Results found: pick from the list below.", "Résultats trouvés : choisis dans la liste ci-dessous."},
	selectItemHint:      {"Select an item", "Sélectionner un item"},
	msgInvalidSelection: {"Invalid selection.", "Sélection invalide."},
	modalQtyTitle:       {"Cases quantity", "Quantité de caisses"},
	inputQtyLabel:       {"How many cases? (1-1000)", "Combien de caisses ? (1-1000)"},
	msgInvalidQty:       {"Quantity must be a whole number between 1 and 1000. Pick the case again.", "La quantité doit être un nombre entier entre 1 et 1000. Choisis la caisse à nouveau."},
	msgAskStatTrak:      {"Do you want the **StatTrak** version?", "Veux-tu la version **StatTrak** ?"},
	btnStatTrakYes:      {"StatTrak: Yes", "StatTrak : Oui"},
	btnStatTrakNo:       {"StatTrak: No", "StatTrak : Non"},
	msgAskWear:          {"Select the wear:", "Sélectionne l'état (wear) :"},
	selectWearHint:      {"Choose wear (FN/MW/FT/WW/BS)", "Choisis l'état (FN/MW/FT/WW/BS)"},
	msgAdded:            {"Added: **%s**", "Ajouté : **%s**"},
	msgItemsHeader:      {"Your items:", "Tes items :"},
	msgNoItems:          {"No items yet. Please add one.", "Aucun item. Ajoute-en au moins un."},
	modalExtraTitle:     {"Additional information", "Informations supplémentaires"},
	inputExtraLabel:     {"Useful details (float/pattern/Souvenir)", "Infos utiles (float/pattern/Souvenir)"},
	summaryTitle:        {"Your request summary", "Récapitulatif de ta demande"},
	summaryRef:          {"Reference", "Référence"},
	summaryLang:         {"Language", "Langue"},
	summaryPayment:      {"Payment method", "Méthode de paiement"},
	summaryItems:        {"Items", "Items"},
	summaryExtra:        {"Additional info", "Infos supplémentaires"},
	btnEstimate:         {"Compute estimate", "Calculer estimation"},
	msgFetchPlaceholder: {"Next: fetch Buff prices and liquidity (coming soon).", "Étape suivante : récupération Buff et liquidité (bientôt disponible)."},
}

// Messages renders wizard prompts in the ticket's language.
type Messages struct {
	en *message.Printer
	fr *message.Printer
}

// NewMessages builds the EN/FR catalog.
func NewMessages() *Messages {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, t := range texts {
		// SetString only fails for malformed tags
		_ = b.SetString(language.English, key, t[0])
		_ = b.SetString(language.French, key, t[1])
	}
	return &Messages{
		en: message.NewPrinter(language.English, message.Catalog(b)),
		fr: message.NewPrinter(language.French, message.Catalog(b)),
	}
}

// Text formats key for lang. String arguments only; numbers are
// formatted by the caller so both languages print them identically.
func (m *Messages) Text(lang model.Lang, key string, args ...string) string {
	a := make([]any, len(args))
	for i, s := range args {
		a[i] = s
	}
	if lang == model.LangFR {
		return m.fr.Sprintf(key, a...)
	}
	return m.en.Sprintf(key, a...)
}
