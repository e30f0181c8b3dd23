package usecase

import (
	"strings"

	"github.com/routepal/routepal/internal/biz/domain"
)

// reservedSenderName is the platform system account; its notices are never
// user queries.
const reservedSenderName = "微信团队"

// noiseFragments are transport-generated notice texts that arrive typed as
// plain text but must never reach the pipeline.
var noiseFragments = []string{
	// video or voice reminder
	"收到一条视频/语音聊天消息，请在手机上查看",
	// red envelope reminder
	"收到红包，请在手机上查看",
	// location share link
	"/cgi-bin/mmwebwx-bin/webwxgetpubliclinkimg",
}

// FilterUsecase rejects message categories and known noise patterns before
// they reach the routing pipeline.
type FilterUsecase struct {
	disableSelfChat bool
}

// NewFilterUsecase creates a filter. disableSelfChat drops messages the bot
// sent to itself; some accounts misbehave when the bot answers its own chat.
func NewFilterUsecase(disableSelfChat bool) *FilterUsecase {
	return &FilterUsecase{disableSelfChat: disableSelfChat}
}

// IsNonsense reports whether the envelope must be dropped without a reply.
// Pure function of its inputs.
func (uc *FilterUsecase) IsNonsense(env domain.Envelope) bool {
	if uc.disableSelfChat && env.SenderIsSelf {
		return true
	}

	switch env.Category {
	case domain.CategoryText:
		// the only category the pipeline handles
	case domain.CategoryUnknown,
		domain.CategoryAttachment,
		domain.CategoryAudio,
		domain.CategoryContact,
		domain.CategoryChatHistory,
		domain.CategoryEmoticon,
		domain.CategoryImage,
		domain.CategoryLocation,
		domain.CategoryMiniProgram,
		domain.CategoryGroupNote,
		domain.CategoryTransfer,
		domain.CategoryRedEnvelope,
		domain.CategoryRecalled,
		domain.CategoryUrl,
		domain.CategoryVideo,
		domain.CategoryPost:
		return true
	default:
		return true
	}

	if env.SenderName == reservedSenderName {
		return true
	}

	for _, fragment := range noiseFragments {
		if strings.Contains(env.RawText, fragment) {
			return true
		}
	}
	return false
}
