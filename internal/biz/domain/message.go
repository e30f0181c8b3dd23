package domain

// MessageCategory classifies an inbound message by its transport-level type.
// The set is closed; adding a value means revisiting every switch over it.
type MessageCategory int

const (
	CategoryUnknown MessageCategory = iota
	CategoryAttachment
	CategoryAudio
	CategoryContact
	CategoryChatHistory
	CategoryEmoticon
	CategoryImage
	CategoryText
	CategoryLocation
	CategoryMiniProgram
	CategoryGroupNote
	CategoryTransfer
	CategoryRedEnvelope
	CategoryRecalled
	CategoryUrl
	CategoryVideo
	CategoryPost
)

// String returns the category name for logging.
func (c MessageCategory) String() string {
	switch c {
	case CategoryUnknown:
		return "unknown"
	case CategoryAttachment:
		return "attachment"
	case CategoryAudio:
		return "audio"
	case CategoryContact:
		return "contact"
	case CategoryChatHistory:
		return "chat_history"
	case CategoryEmoticon:
		return "emoticon"
	case CategoryImage:
		return "image"
	case CategoryText:
		return "text"
	case CategoryLocation:
		return "location"
	case CategoryMiniProgram:
		return "mini_program"
	case CategoryGroupNote:
		return "group_note"
	case CategoryTransfer:
		return "transfer"
	case CategoryRedEnvelope:
		return "red_envelope"
	case CategoryRecalled:
		return "recalled"
	case CategoryUrl:
		return "url"
	case CategoryVideo:
		return "video"
	case CategoryPost:
		return "post"
	}
	return "unknown"
}

// Envelope is an immutable view of one inbound message. It is built by the
// transport adapter, read by the pipeline, and discarded after one routing pass.
type Envelope struct {
	RawText      string
	SenderIsSelf bool
	SenderName   string
	Category     MessageCategory
	IsPrivate    bool // no enclosing group context
}
