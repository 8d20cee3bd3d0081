package event

const LinkConfirmedDestination string = "identity.link.confirmed"

type LinkConfirmedMessage struct {
	LinkID      int64  `json:"link_id,string"`
	UserID      int64  `json:"user_id,string"`
	Email       string `json:"email"`
	ChatID      int64  `json:"chat_id"`
	ConfirmedAt int64  `json:"confirmed_at"`
}
