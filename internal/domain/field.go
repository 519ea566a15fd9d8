package domain

// Field names one column of an access-log record.
type Field string

const (
	FieldHost      Field = "host"
	FieldLogname   Field = "logname"
	FieldUser      Field = "user"
	FieldTimestamp Field = "timestamp"
	FieldRequest   Field = "request"
	FieldStatus    Field = "status"
	FieldBytes     Field = "bytes"
)

// Wildcard selects every field.
const Wildcard = "*"

const fieldCount = 7

// Fields returns all record fields in their fixed order.
func Fields() []Field {
	return []Field{
		FieldHost,
		FieldLogname,
		FieldUser,
		FieldTimestamp,
		FieldRequest,
		FieldStatus,
		FieldBytes,
	}
}

func (f Field) String() string {
	return string(f)
}

// Index returns the position of the field in a record, or -1 for unknown names.
func (f Field) Index() int {
	switch f {
	case FieldHost:
		return 0
	case FieldLogname:
		return 1
	case FieldUser:
		return 2
	case FieldTimestamp:
		return 3
	case FieldRequest:
		return 4
	case FieldStatus:
		return 5
	case FieldBytes:
		return 6
	}
	return -1
}

// ParseField maps a name onto one of the known fields.
func ParseField(name string) (Field, bool) {
	f := Field(name)
	if f.Index() < 0 {
		return "", false
	}
	return f, true
}

// Describe returns the short legend shown to console users.
func (f Field) Describe() string {
	switch f {
	case FieldHost:
		return "IP address of the client"
	case FieldLogname:
		return "remote logname"
	case FieldUser:
		return "authenticated remote user"
	case FieldTimestamp:
		return "time of request"
	case FieldRequest:
		return "first request line"
	case FieldStatus:
		return "final status"
	case FieldBytes:
		return "size of response in bytes"
	}
	return ""
}
