package usecase

import (
	"testing"

	"github.com/routepal/routepal/internal/biz/domain"
)

func TestIsNonsense_Categories(t *testing.T) {
	uc := NewFilterUsecase(false)

	text := domain.Envelope{RawText: "hello", Category: domain.CategoryText}
	if uc.IsNonsense(text) {
		t.Error("Expected plain text to pass the filter")
	}

	nonText := []domain.MessageCategory{
		domain.CategoryUnknown,
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
		domain.CategoryPost,
	}
	for _, cat := range nonText {
		env := domain.Envelope{RawText: "hello", Category: cat}
		if !uc.IsNonsense(env) {
			t.Errorf("Expected category %s to be rejected", cat)
		}
	}
}

func TestIsNonsense_SelfChat(t *testing.T) {
	env := domain.Envelope{RawText: "hi", Category: domain.CategoryText, SenderIsSelf: true}

	if NewFilterUsecase(false).IsNonsense(env) {
		t.Error("Self chat should pass when not disabled")
	}
	if !NewFilterUsecase(true).IsNonsense(env) {
		t.Error("Self chat should be rejected when disabled")
	}
}

func TestIsNonsense_ReservedSender(t *testing.T) {
	uc := NewFilterUsecase(false)
	env := domain.Envelope{RawText: "notice", Category: domain.CategoryText, SenderName: "微信团队"}
	if !uc.IsNonsense(env) {
		t.Error("Expected the system account sender to be rejected")
	}
}

func TestIsNonsense_NoiseFragments(t *testing.T) {
	uc := NewFilterUsecase(false)

	noisy := []string{
		"收到一条视频/语音聊天消息，请在手机上查看",
		"你 收到红包，请在手机上查看 了",
		"https://example.com/cgi-bin/mmwebwx-bin/webwxgetpubliclinkimg?x=1",
	}
	for _, text := range noisy {
		env := domain.Envelope{RawText: text, Category: domain.CategoryText}
		if !uc.IsNonsense(env) {
			t.Errorf("Expected noise text %q to be rejected", text)
		}
	}
}
