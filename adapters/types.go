package adapters

// ProfileScope is the attribution scope of a profile attribute.
type ProfileScope string

const (
	// ProfileScopeApplication records the attribute for this app only.
	ProfileScopeApplication ProfileScope = "application"
	// ProfileScopeOrganization shares the attribute across every app of the organization.
	ProfileScopeOrganization ProfileScope = "organization"
)

// Location is a device location handed to the vendor client.
type Location struct {
	Provider  string  `json:"provider"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float32 `json:"speed"`
}

// Intent is the launch intent of an activity.
type Intent struct {
	Action string            `json:"action,omitempty"`
	Data   string            `json:"data,omitempty"`
	Extras map[string]string `json:"extras,omitempty"`
}

// Application is the host application context passed to the vendor on integration.
type Application interface {
	PackageName() string
}

// Activity is a host screen whose lifecycle is forwarded to the vendor client.
type Activity interface {
	// Intent returns the launch intent, or nil when there is none.
	Intent() *Intent
}

// MessageHost is an Activity able to display in-app messages.
type MessageHost interface {
	Activity
	MessageHostID() string
}

// RecordType identifies the kind of datapoint uploaded by the vendor client.
type RecordType string

const (
	RecordTypeEvent        RecordType = "event"
	RecordTypeScreen       RecordType = "screen"
	RecordTypeProfile      RecordType = "profile"
	RecordTypeSessionOpen  RecordType = "session_open"
	RecordTypeSessionClose RecordType = "session_close"
)

// Record is a single datapoint queued for upload.
type Record struct {
	Type       RecordType        `json:"type"`
	Name       string            `json:"name,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Revenue    int64             `json:"revenue,omitempty"`
	Scope      ProfileScope      `json:"scope,omitempty"`
	SessionID  string            `json:"sessionId,omitempty"`
	Customer   map[string]string `json:"customer,omitempty"`
	Dimensions map[int]string    `json:"dimensions,omitempty"`
	Location   *Location         `json:"location,omitempty"`
	TestMode   bool              `json:"testMode,omitempty"`
	IssuedAt   int64             `json:"issuedAt"`
}
