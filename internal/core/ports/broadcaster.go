package ports

// Broadcaster fans a named event out to every connected real-time listener.
// Delivery is at-most-once with no acknowledgement; clients that miss an
// event recover state on their next poll.
type Broadcaster interface {
	Publish(event string, payload any)
}

// Event names published by the core. The UI treats these as refresh triggers,
// not as payload transport.
const (
	EventRefreshWallet  = "refresh-wallet"
	EventRefreshBalance = "refresh-balance"
	EventPerkRedeemed   = "perk-redeemed"
	EventNewDealAdded   = "new-deal-added"
	EventMonthUpdate    = "test-month-update"
	EventRoastTrigger   = "trigger-ai-roast"
	EventTestComplete   = "test-complete"
	EventTestStopped    = "test-stopped"
)
