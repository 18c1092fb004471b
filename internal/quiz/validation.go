package quiz

import (
	"strings"
	"unicode"
)

const (
	MaxNicknameLength   = 20
	MaxAnswerLength     = 140
	MaxQuestionLength   = 280
	MaxQuestionIDLength = 64
)

// NormalizeText trims and collapses runs of whitespace.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func ValidateNickname(name string) (string, error) {
	return validateText("nickname", name, MaxNicknameLength)
}

func ValidateAnswer(answer string) (string, error) {
	return validateText("answer", answer, MaxAnswerLength)
}

func ValidateQuestionText(text string) (string, error) {
	return validateText("question", text, MaxQuestionLength)
}

// ValidateQuestionID accepts ASCII letters, digits, '-' and '_' so ids
// can travel in URLs unescaped.
func ValidateQuestionID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", Errorf(KindInvalidInput, "question id is required")
	}
	if len(trimmed) > MaxQuestionIDLength {
		return "", Errorf(KindInvalidInput, "question id must be %d characters or fewer", MaxQuestionIDLength)
	}
	for _, r := range trimmed {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return "", Errorf(KindInvalidInput, "question id contains unsupported characters")
		}
	}
	return trimmed, nil
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := NormalizeText(text)
	if trimmed == "" {
		return "", Errorf(KindInvalidInput, "%s is required", label)
	}
	if len([]rune(trimmed)) > maxLen {
		return "", Errorf(KindInvalidInput, "%s must be %d characters or fewer", label, maxLen)
	}
	if !isSafeText(trimmed) {
		return "", Errorf(KindInvalidInput, "%s contains unsupported characters", label)
	}
	return trimmed, nil
}

func isSafeText(text string) bool {
	for _, r := range text {
		if r == ' ' {
			continue
		}
		if !unicode.IsPrint(r) || r == '<' || r == '>' {
			return false
		}
	}
	return true
}
