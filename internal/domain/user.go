package domain

// Document field names for user profiles.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldPushToken = "pushToken"
	FieldUID       = "uid"
)

// UserProfile is the document stored for each signed-up user. Pointer fields
// distinguish an absent value from an empty one.
type UserProfile struct {
	Name      *string `json:"name" validate:"required"`
	Email     *string `json:"email" validate:"required"`
	Phone     *string `json:"phone" validate:"required"`
	PushToken *string `json:"pushToken,omitempty" validate:"required"`
	UID       *string `json:"uid" validate:"required"`
}

// Fields returns the profile as document fields. Absent values are left out.
func (p UserProfile) Fields() map[string]any {
	fields := make(map[string]any, 5)
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	set(FieldName, p.Name)
	set(FieldEmail, p.Email)
	set(FieldPhone, p.Phone)
	set(FieldPushToken, p.PushToken)
	set(FieldUID, p.UID)
	return fields
}

// EmailOrEmpty is used for log fields.
func (p UserProfile) EmailOrEmpty() string {
	if p.Email == nil {
		return ""
	}
	return *p.Email
}
