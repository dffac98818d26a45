// Package domain defines the core domain models for the conversation service.
package domain

import "time"

// Requester is the authenticated caller of an operation.
type Requester struct {
	UserID   string `json:"userID"`
	IsSeller bool   `json:"isSeller"`
}

// Conversation pairs a seller and a buyer with per-side read state.
type Conversation struct {
	ID           string    `json:"id"`
	SellerID     string    `json:"sellerID"`
	BuyerID      string    `json:"buyerID"`
	ReadBySeller bool      `json:"readBySeller"`
	ReadByBuyer  bool      `json:"readByBuyer"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ConversationID derives the identifier of the conversation between a seller
// and a buyer. The seller always comes first, whichever side creates it. The
// two IDs are joined without a separator, so distinct pairs whose
// concatenations match ("ab"+"c", "a"+"bc") share one identifier.
func ConversationID(sellerID, buyerID string) string {
	return sellerID + buyerID
}

// NewConversation builds the conversation a requester opens with the
// counterpart "to". The requester's side starts read, the other side unread.
func NewConversation(r Requester, to string, now time.Time) *Conversation {
	sellerID, buyerID := to, r.UserID
	if r.IsSeller {
		sellerID, buyerID = r.UserID, to
	}
	return &Conversation{
		ID:           ConversationID(sellerID, buyerID),
		SellerID:     sellerID,
		BuyerID:      buyerID,
		ReadBySeller: r.IsSeller,
		ReadByBuyer:  !r.IsSeller,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ReadFlags returns the (readBySeller, readByBuyer) pair a requester leaves
// behind when acting on a conversation.
func ReadFlags(r Requester) (bool, bool) {
	return r.IsSeller, !r.IsSeller
}
