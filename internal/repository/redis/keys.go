package redis

import "fmt"

const ns = "funnel:v2"

func KeyDraft(sessionID string) string {
	return fmt.Sprintf("%s:draft:%s", ns, sessionID)
}

func KeyAvailability(date string) string {
	return fmt.Sprintf("%s:availability:%s", ns, date)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelDraftsChanged() string {
	return ns + ":drafts:changed"
}
