package domain

type CallKind string

const (
	CallVoice CallKind = "voice"
	CallVideo CallKind = "video"
)

// CallKindOr returns the kind the caller asked for, video when unspecified.
// Unknown kinds pass through untouched.
func CallKindOr(kind string) CallKind {
	if kind == "" {
		return CallVideo
	}
	return CallKind(kind)
}
