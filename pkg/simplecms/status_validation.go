package simplecms

import "time"

// validateStatus checks that status is a known content status.
func validateStatus(status ContentStatus) error {
	switch status {
	case ContentStatusDraft, ContentStatusPublished, ContentStatusArchived:
		return nil
	default:
		return invalid("status", "unknown status %q", status)
	}
}

// entersPublished reports whether moving from -> to is a transition into
// published. A new entry has an empty from status.
func entersPublished(from, to ContentStatus) bool {
	return to == ContentStatusPublished && from != ContentStatusPublished
}

// applyStatus sets the entry status and stamps PublishedAt on a transition
// into published. Leaving published keeps PublishedAt as a record that the
// entry was published at some point.
func applyStatus(content *Content, status ContentStatus, now time.Time) {
	if entersPublished(content.Status, status) {
		t := now
		content.PublishedAt = &t
	}
	content.Status = status
}
