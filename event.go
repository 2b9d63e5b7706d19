// Copyright (C) 2025 Nat Holloway. All Rights Reserved.

package jev

// Event is the type of a single parsing result reported by [Parser.Next].
type Event byte

// Constants defining the valid Event values.
const (
	Invalid       Event = iota // invalid event
	NeedMoreInput              // the feeder ran dry; push more bytes and drive again
	StartObject                // begin object "{"
	EndObject                  // end object "}"
	StartArray                 // begin array "["
	EndArray                   // end array "]"
	FieldName                  // object member key
	String                     // string value
	Integer                    // number with no fraction or exponent
	Number                     // number with fraction and/or exponent
	True                       // constant: true
	False                      // constant: false
	Null                       // constant: null
	EndOfInput                 // the document is complete
	Error                      // parsing failed; see Parser.Err
)

var eventStr = [...]string{
	Invalid:       "invalid event",
	NeedMoreInput: "need more input",
	StartObject:   "start object",
	EndObject:     "end object",
	StartArray:    "start array",
	EndArray:      "end array",
	FieldName:     "field name",
	String:        "string",
	Integer:       "integer",
	Number:        "number",
	True:          "true",
	False:         "false",
	Null:          "null",
	EndOfInput:    "end of input",
	Error:         "error",
}

func (e Event) String() string {
	v := int(e)
	if v >= len(eventStr) {
		return eventStr[Invalid]
	}
	return eventStr[v]
}
