package livekit

// VideoGrant mirrors the provider's "video" claim. Nil permission pointers
// leave the provider default in place.
type VideoGrant struct {
	RoomCreate bool   `json:"roomCreate,omitempty"`
	RoomList   bool   `json:"roomList,omitempty"`
	RoomAdmin  bool   `json:"roomAdmin,omitempty"`
	RoomJoin   bool   `json:"roomJoin,omitempty"`
	Room       string `json:"room,omitempty"`

	CanPublish           *bool `json:"canPublish,omitempty"`
	CanSubscribe         *bool `json:"canSubscribe,omitempty"`
	CanPublishData       *bool `json:"canPublishData,omitempty"`
	CanUpdateOwnMetadata *bool `json:"canUpdateOwnMetadata,omitempty"`
	Hidden               bool  `json:"hidden,omitempty"`
}

func Bool(v bool) *bool { return &v }

// JoinGrant authorizes a participant to join room with full publish rights.
func JoinGrant(room string) *VideoGrant {
	return &VideoGrant{
		Room:                 room,
		RoomJoin:             true,
		CanPublish:           Bool(true),
		CanSubscribe:         Bool(true),
		CanPublishData:       Bool(true),
		CanUpdateOwnMetadata: Bool(true),
	}
}
