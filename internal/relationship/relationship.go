package relationship

import "time"

// Tag classifies a relationship. The first tag on a relationship is its
// primary category and drives scoring and reminder copy.
type Tag string

const (
	TagSpouse    Tag = "spouse"
	TagPartner   Tag = "partner"
	TagFamily    Tag = "family"
	TagFriend    Tag = "friend"
	TagColleague Tag = "colleague"
	TagMentor    Tag = "mentor"
	TagMentee    Tag = "mentee"
	TagBusiness  Tag = "business"
)

// AllTags lists every valid tag, used for input validation.
var AllTags = []Tag{
	TagSpouse, TagPartner, TagFamily, TagFriend,
	TagColleague, TagMentor, TagMentee, TagBusiness,
}

// ValidTag reports whether t is one of the known tags.
func ValidTag(t Tag) bool {
	for _, known := range AllTags {
		if t == known {
			return true
		}
	}
	return false
}

// InteractionType is the channel an interaction happened over.
type InteractionType string

const (
	InteractionCall    InteractionType = "call"
	InteractionMessage InteractionType = "message"
	InteractionMeeting InteractionType = "meeting"
	InteractionGift    InteractionType = "gift"
	InteractionOther   InteractionType = "other"
)

// DateType categorizes an important date.
type DateType string

const (
	DateBirthday    DateType = "birthday"
	DateAnniversary DateType = "anniversary"
	DateOther       DateType = "other"
)

// Creator identifies which side of the relationship created a shared memory.
type Creator string

const (
	CreatedBySelf  Creator = "self"
	CreatedByOther Creator = "other"
)

// Interaction is a single recorded contact. EmotionRating is 0 when the
// interaction was not rated, otherwise 1-10.
type Interaction struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Type          InteractionType `json:"type"`
	Notes         string          `json:"notes,omitempty"`
	EmotionRating int             `json:"emotion_rating,omitempty"`
}

// EmotionEntry is one point in the append-only emotion log, independent of
// any particular interaction.
type EmotionEntry struct {
	Date   time.Time `json:"date"`
	Rating int       `json:"rating"`
}

// Goal is something the user wants to do for or with this person.
// TargetDate is zero when no deadline was set.
type Goal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TargetDate  time.Time `json:"target_date,omitempty"`
	Progress    int       `json:"progress"`
	Shared      bool      `json:"shared"`
	Completed   bool      `json:"completed"`
}

// CurrentProgress returns 100 for completed goals, otherwise the stored
// progress (0 when never set).
func (g Goal) CurrentProgress() int {
	if g.Completed {
		return 100
	}
	return g.Progress
}

// ImportantDate is a calendar date worth remembering. For recurring dates
// only the month and day are meaningful; the stored year is a placeholder.
type ImportantDate struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Type      DateType  `json:"type"`
	Recurring bool      `json:"recurring"`
}

// Milestone is an append-only historical marker.
type Milestone struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
}

// SharedMemory is a moment recorded by either side of the relationship.
type SharedMemory struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Date         time.Time `json:"date"`
	CreatedBy    Creator   `json:"created_by"`
	Acknowledged bool      `json:"acknowledged"`
}

// CommunicationPreferences configures how and when the user wants to be
// nudged about this relationship. Consumed by the notification layer only;
// the scoring engine never reads it.
type CommunicationPreferences struct {
	PreferredChannels     []InteractionType `json:"preferred_channels,omitempty"`
	QuietHoursStart       int               `json:"quiet_hours_start,omitempty"`
	QuietHoursEnd         int               `json:"quiet_hours_end,omitempty"`
	NotificationFrequency string            `json:"notification_frequency,omitempty"`
}

// Relationship is the aggregate root. ConnectionScore is owned by the
// scoring engine and persisted by the store after every mutation to any of
// the child collections.
type Relationship struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Tags              []Tag                    `json:"tags"`
	Notes             string                   `json:"notes,omitempty"`
	ConnectionScore   int                      `json:"connection_score"`
	ReminderFrequency int                      `json:"reminder_frequency"`
	Preferences       CommunicationPreferences `json:"preferences,omitempty"`

	Interactions   []Interaction   `json:"interactions,omitempty"`
	ImportantDates []ImportantDate `json:"important_dates,omitempty"`
	Goals          []Goal          `json:"goals,omitempty"`
	Milestones     []Milestone     `json:"milestones,omitempty"`
	SharedMemories []SharedMemory  `json:"shared_memories,omitempty"`
	EmotionHistory []EmotionEntry  `json:"emotion_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrimaryTag returns the first tag, or friend when the tag set is empty so
// callers always get a usable category.
func (r *Relationship) PrimaryTag() Tag {
	if len(r.Tags) > 0 {
		return r.Tags[0]
	}
	return TagFriend
}

// HasTag reports whether the relationship carries the given tag.
func (r *Relationship) HasTag(t Tag) bool {
	for _, tag := range r.Tags {
		if tag == t {
			return true
		}
	}
	return false
}

// LastInteraction is the most recent interaction date, computed from the
// collection every time so it can never drift out of sync. Zero when the
// relationship has no interactions.
func (r *Relationship) LastInteraction() time.Time {
	var last time.Time
	for _, i := range r.Interactions {
		if i.Date.After(last) {
			last = i.Date
		}
	}
	return last
}

// ClampRating forces a rating into the valid 1-10 range. Zero (unrated)
// passes through untouched.
func ClampRating(n int) int {
	if n == 0 {
		return 0
	}
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
