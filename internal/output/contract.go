package output

import "github.com/novelpro/novelkey/internal/errors"

const SchemaVersion = 1

// ErrorObject 是信封中的错误部分。Cause 是底层错误（通常是平台返回的原文）。
type ErrorObject struct {
	Code    errors.Code    `json:"code" yaml:"code"`
	Message string         `json:"message" yaml:"message"`
	Cause   string         `json:"cause,omitempty" yaml:"cause,omitempty"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// Envelope 是 CLI 与 MCP 共用的输出结构。
type Envelope struct {
	OK            bool         `json:"ok" yaml:"ok"`
	SchemaVersion int          `json:"schema_version" yaml:"schema_version"`
	Error         *ErrorObject `json:"error,omitempty" yaml:"error,omitempty"`
	Data          any          `json:"data,omitempty" yaml:"data,omitempty"`
}

func OKEnvelope(data any) Envelope {
	return Envelope{OK: true, SchemaVersion: SchemaVersion, Data: data}
}

func ErrorEnvelope(xe *errors.XError) Envelope {
	obj := &ErrorObject{Code: xe.Code, Message: xe.Message, Details: xe.Details}
	if cause := xe.Unwrap(); cause != nil {
		obj.Cause = cause.Error()
	}
	return Envelope{OK: false, SchemaVersion: SchemaVersion, Error: obj}
}
