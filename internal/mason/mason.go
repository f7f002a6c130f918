// Package mason builds Mason hypermedia documents.
//
// A [Document] is an immutable value: every With method returns a modified
// copy and leaves the receiver untouched, so documents can be shared and
// extended freely. Documents marshal to a single JSON object holding the
// payload fields at the top level next to the reserved @namespaces, @controls
// and @error keys. Object keys are emitted in sorted order, so equal documents
// always encode to identical bytes.
package mason

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"
)

// MediaType is the content type of Mason documents.
const MediaType = "application/vnd.mason+json"

// Reserved document keys.
const (
	keyNamespaces = "@namespaces"
	keyControls   = "@controls"
	keyError      = "@error"
)

// ErrorProfile documents the error document layout.
const ErrorProfile = "/profiles/error/"

// EncodingJSON is the encoding of controls whose request body is JSON.
const EncodingJSON = "json"

// Control describes an available transition from the current resource state.
type Control struct {
	Href     string          `json:"href"`
	Method   string          `json:"method,omitempty"`
	Encoding string          `json:"encoding,omitempty"`
	Title    string          `json:"title,omitempty"`
	Schema   json.RawMessage `json:"schema,omitempty"`
}

// Namespace maps a link relation prefix to its documentation.
type Namespace struct {
	Name string `json:"name"`
}

// Error is the @error element of a document.
type Error struct {
	Message  string   `json:"@message"`
	Messages []string `json:"@messages"`
}

// Document is a Mason hypermedia document.
type Document struct {
	fields     map[string]any
	namespaces map[string]Namespace
	controls   map[string]Control
	err        *Error
}

// New returns a document holding a copy of fields as its payload.
func New(fields map[string]any) Document {
	return Document{fields: maps.Clone(fields)}
}

// With returns a copy of d with the payload field key set to val. Reserved
// keys are ignored when the document is encoded.
func (d Document) With(key string, val any) Document {
	d.fields = maps.Clone(d.fields)
	if d.fields == nil {
		d.fields = make(map[string]any, 1)
	}
	d.fields[key] = val
	return d
}

// WithNamespace returns a copy of d declaring prefix for the link relations
// documented at uri.
func (d Document) WithNamespace(prefix, uri string) Document {
	d.namespaces = maps.Clone(d.namespaces)
	if d.namespaces == nil {
		d.namespaces = make(map[string]Namespace, 1)
	}
	d.namespaces[prefix] = Namespace{Name: uri}
	return d
}

// WithControl returns a copy of d with the named control set.
func (d Document) WithControl(name string, ctrl Control) Document {
	d.controls = maps.Clone(d.controls)
	if d.controls == nil {
		d.controls = make(map[string]Control, 1)
	}
	d.controls[name] = ctrl
	return d
}

// WithError returns a copy of d carrying an @error element.
func (d Document) WithError(message string, messages ...string) Document {
	d.err = &Error{Message: message, Messages: slices.Clone(messages)}
	if d.err.Messages == nil {
		d.err.Messages = []string{}
	}
	return d
}

// Field returns the payload field stored under key.
func (d Document) Field(key string) (any, bool) {
	val, ok := d.fields[key]
	return val, ok
}

// Control returns the named control.
func (d Document) Control(name string) (Control, bool) {
	ctrl, ok := d.controls[name]
	return ctrl, ok
}

// ControlNames returns the names of the document's controls in sorted order.
func (d Document) ControlNames() []string {
	return slices.Sorted(maps.Keys(d.controls))
}

// Err returns the @error element, or nil if the document carries none.
func (d Document) Err() *Error {
	return d.err
}

// MarshalJSON satisfies [json.Marshaler].
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.fields)+3) //nolint:mnd // reserved keys
	for key, val := range d.fields {
		switch key {
		case keyNamespaces, keyControls, keyError:
			continue
		default:
			out[key] = val
		}
	}
	if len(d.namespaces) > 0 {
		out[keyNamespaces] = d.namespaces
	}
	if len(d.controls) > 0 {
		out[keyControls] = d.controls
	}
	if d.err != nil {
		out[keyError] = d.err
	}
	return json.Marshal(out)
}

// Link is a plain navigation control.
func Link(href string) Control {
	return Control{Href: href}
}

// Titled is a navigation control with a title.
func Titled(href, title string) Control {
	return Control{Href: href, Title: title}
}

// Post is a control creating a resource at href with a JSON body matching
// schema.
func Post(href, title string, schema json.RawMessage) Control {
	return Control{
		Href:     href,
		Method:   http.MethodPost,
		Encoding: EncodingJSON,
		Title:    title,
		Schema:   schema,
	}
}

// Put is a control replacing the resource at href with a JSON body matching
// schema.
func Put(href, title string, schema json.RawMessage) Control {
	return Control{
		Href:     href,
		Method:   http.MethodPut,
		Encoding: EncodingJSON,
		Title:    title,
		Schema:   schema,
	}
}

// Delete is a control removing the resource at href.
func Delete(href, title string) Control {
	return Control{Href: href, Method: http.MethodDelete, Title: title}
}

// ErrorDocument returns the error document for a request to resourceURL.
func ErrorDocument(resourceURL, title string, messages ...string) Document {
	return New(map[string]any{"resource_url": resourceURL}).
		WithError(title, messages...).
		WithControl("profile", Link(ErrorProfile))
}
