// Package domain defines the persistence models for tenants, chats, messages,
// the hotel room cache, audit logs, and prompt context. These types are mapped
// with GORM and form the core data layer of the chatbot backend.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Chat statuses. Only ChatActive chats are candidates for reuse.
const (
	ChatActive   = "active"
	ChatInactive = "inactive"
	ChatArchived = "archived"
)

// Client is a tenant: a hotel or business account that authenticates with a
// bearer token and owns credentials for its upstream reservation system.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name / BusinessName: display and legal names.
//   - Email: unique contact address.
//   - Active: inactive tenants are rejected by authentication.
//   - Token: bearer token presented by chat front-ends (unique).
//   - APIToken / APIAddress: upstream hotel API credentials and base URL.
//   - InformationBasic: JSON document produced by the context structurer.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Client struct {
	ID               string    `json:"id"                gorm:"type:char(36);primaryKey"`
	Name             string    `json:"name"              gorm:"type:varchar(100);not null"`
	BusinessName     string    `json:"business_name"     gorm:"type:varchar(100)"`
	Phone            string    `json:"phone"             gorm:"type:varchar(20)"`
	Contact          string    `json:"contact"           gorm:"type:varchar(100)"`
	Email            string    `json:"email"             gorm:"type:varchar(254);uniqueIndex"`
	Active           bool      `json:"active"            gorm:"not null;default:true"`
	Token            string    `json:"-"                 gorm:"type:varchar(64);not null;uniqueIndex"`
	APIToken         string    `json:"-"                 gorm:"type:varchar(255)"`
	APIAddress       string    `json:"api_address"       gorm:"type:varchar(255)"`
	Observation      string    `json:"observation"       gorm:"type:text"`
	InformationBasic string    `json:"information_basic" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName returns the database table name for Client.
func (Client) TableName() string { return "clients" }

// Origin is the channel a chat or message arrived through (e.g. WhatsApp).
type Origin struct {
	ID     string `json:"id"     gorm:"type:char(36);primaryKey"`
	Name   string `json:"name"   gorm:"type:varchar(50);not null;uniqueIndex"`
	Active bool   `json:"active" gorm:"not null;default:true"`
}

// TableName returns the database table name for Origin.
func (Origin) TableName() string { return "origins" }

// Chat tracks one conversation between a tenant and an external contact.
// Chats are archived instead of deleted.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - ClientID: owning tenant; part of the lookup index.
//   - OriginID: optional channel reference.
//   - ContactID: opaque external contact identifier (e.g. phone number).
//   - Flow / FlowOption: automation flow state flags set by the front-end.
//   - Status: one of ChatActive, ChatInactive, ChatArchived.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Chat struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	ClientID   string    `json:"client_id"   gorm:"type:char(36);not null;index:idx_chat_lookup,priority:1"`
	OriginID   *string   `json:"origin_id"   gorm:"type:char(36)"`
	ContactID  string    `json:"contact_id"  gorm:"type:varchar(100);not null;index:idx_chat_lookup,priority:2"`
	Flow       *bool     `json:"flow"        gorm:"default:false"`
	FlowOption *int      `json:"flow_option" gorm:"default:0"`
	Status     string    `json:"status"      gorm:"type:varchar(10);not null;default:'active';index:idx_chat_lookup,priority:3;check:status IN ('active','inactive','archived')"`
	CreatedAt  time.Time `json:"created_at"  gorm:"index:idx_chat_lookup,priority:4"`
	UpdatedAt  time.Time `json:"updated_at"`

	Client Client  `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Origin *Origin `json:"-" gorm:"foreignKey:OriginID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the database table name for Chat.
func (Chat) TableName() string { return "chats" }

// Message is one append-only exchange with a contact: the inbound text and,
// when already known, the assistant's reply.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - ClientID / ContactID: owner tenant and contact; indexed with Timestamp.
//   - ChatID / OriginID: optional linkage to the chat and channel.
//   - ContentInput: text received from the contact.
//   - ContentOutput: optional reply text.
//   - Timestamp: creation time.
type Message struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	ClientID      string    `json:"client_id"      gorm:"type:char(36);not null;index:idx_contact_msgs,priority:1"`
	ChatID        *string   `json:"chat_id"        gorm:"type:char(36);index"`
	OriginID      *string   `json:"origin_id"      gorm:"type:char(36)"`
	ContactID     string    `json:"contact_id"     gorm:"type:varchar(100);not null;index:idx_contact_msgs,priority:2"`
	ContentInput  string    `json:"content_input"  gorm:"type:text;not null"`
	ContentOutput *string   `json:"content_output" gorm:"type:text"`
	Timestamp     time.Time `json:"timestamp"      gorm:"autoCreateTime;index:idx_contact_msgs,priority:3"`

	Client Client `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// HotelRoom caches upstream room metadata per tenant. Rows are upserted on
// every availability check, keyed by (ClientID, RoomCode).
//
// NumberOfPax is nil when the upstream never reported a capacity for the
// room; such rooms are treated as fitting any party size.
type HotelRoom struct {
	ID          string    `json:"id"            gorm:"type:char(36);primaryKey"`
	ClientID    string    `json:"client_id"     gorm:"type:char(36);not null;uniqueIndex:ux_client_room,priority:1"`
	RoomCode    string    `json:"room_code"     gorm:"type:varchar(50);not null;uniqueIndex:ux_client_room,priority:2"`
	RoomType    string    `json:"room_type"     gorm:"type:varchar(100);not null"`
	NumberOfPax *int      `json:"number_of_pax"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for HotelRoom.
func (HotelRoom) TableName() string { return "hotel_rooms" }

// IntegrationLog is the immutable audit record of one upstream call.
//
// Fields:
//   - ContactID / Origin: who triggered the call and through which flow.
//   - To: destination URL.
//   - Content: outbound payload (secrets masked).
//   - Response: parsed upstream body, or a {"raw": ...} / {"detail": ...} wrapper.
//   - StatusHTTP: upstream status or the synthetic 502/504.
//   - ResponseTime: elapsed seconds rounded to milliseconds.
type IntegrationLog struct {
	ID           string         `json:"id"            gorm:"type:char(36);primaryKey"`
	ClientID     string         `json:"client_id"     gorm:"type:char(36);not null;index:idx_client_logs,priority:1"`
	ContactID    string         `json:"contact_id"    gorm:"type:varchar(100)"`
	Origin       string         `json:"origin"        gorm:"type:varchar(100)"`
	To           string         `json:"to"            gorm:"type:varchar(255)"`
	Content      datatypes.JSON `json:"content"       gorm:"type:text"`
	Response     datatypes.JSON `json:"response"      gorm:"type:text"`
	StatusHTTP   int            `json:"status_http"`
	ResponseTime float64        `json:"response_time"`
	CreatedAt    time.Time      `json:"created_at"    gorm:"index:idx_client_logs,priority:2"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TableName returns the database table name for IntegrationLog.
func (IntegrationLog) TableName() string { return "log_integrations" }

// SystemLog records an inbound request and the status it finished with
// (e.g. "Pending Validation", "SUCCESS", "ERROR: ...").
type SystemLog struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	ClientID      string    `json:"client_id"      gorm:"type:char(36);not null;index"`
	Origin        string    `json:"origin"         gorm:"type:varchar(100)"`
	Content       string    `json:"content"        gorm:"type:text"`
	StatusMessage string    `json:"status_message" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the database table name for SystemLog.
func (SystemLog) TableName() string { return "log_api_systems" }

// Context categories accepted for ContextSnippet.Category.
const (
	CategoryRooms        = "quartos"
	CategorySchedules    = "horarios"
	CategoryPayment      = "pagamento"
	CategoryServices     = "servicos"
	CategoryContact      = "contato"
	CategoryPolicies     = "politicas"
	CategoryInstructions = "instrucoes_atendimento"
)

// ContextCategories lists every valid category in display order.
var ContextCategories = []string{
	CategoryRooms,
	CategorySchedules,
	CategoryPayment,
	CategoryServices,
	CategoryContact,
	CategoryPolicies,
	CategoryInstructions,
}

// IsContextCategory reports whether c is one of ContextCategories.
func IsContextCategory(c string) bool {
	for _, v := range ContextCategories {
		if v == c {
			return true
		}
	}
	return false
}

// ContextSnippet is a piece of tenant knowledge injected into LLM prompts when
// its keywords match an incoming message. There is at most one row per
// (ClientID, Category).
//
// Fields:
//   - Category: one of ContextCategories.
//   - Content: free text returned to the caller.
//   - Keywords: match terms, stored as a JSON array.
//   - Priority: added to the score twice; 10 or more pins the snippet.
//   - Active: inactive snippets are never scored.
type ContextSnippet struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	ClientID  string    `json:"client_id"  gorm:"type:char(36);not null;uniqueIndex:ux_client_category,priority:1"`
	Category  string    `json:"category"   gorm:"type:varchar(50);not null;uniqueIndex:ux_client_category,priority:2"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	Keywords  []string  `json:"keywords"   gorm:"type:text;serializer:json"`
	Priority  int       `json:"priority"   gorm:"not null;default:0"`
	Active    bool      `json:"active"     gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for ContextSnippet.
func (ContextSnippet) TableName() string { return "context_categories" }

// SystemPrompt is a versioned base prompt. At most one prompt per
// (ClientID, Name) is active at a time.
type SystemPrompt struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	ClientID  string    `json:"client_id"  gorm:"type:char(36);not null;index:idx_client_prompt,priority:1"`
	Name      string    `json:"name"       gorm:"type:varchar(100);not null;default:'main';index:idx_client_prompt,priority:2"`
	Prompt    string    `json:"prompt"     gorm:"type:text;not null"`
	Version   string    `json:"version"    gorm:"type:varchar(20);not null;default:'1.0'"`
	Active    bool      `json:"active"     gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for SystemPrompt.
func (SystemPrompt) TableName() string { return "system_prompts" }
