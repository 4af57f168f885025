package domain

// Message is one error, warning or info entry with its diagnostic parameters.
type Message struct {
	ID         MessageID         `json:"id"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func NewMessage(id MessageID, attrs map[string]string) Message {
	m := Message{ID: id, Text: id.Text()}
	if len(attrs) > 0 {
		m.Attributes = make(map[string]string, len(attrs))
		for k, v := range attrs {
			m.Attributes[k] = v
		}
	}
	return m
}

// Conclusion accumulates the result of one subprocess.
type Conclusion struct {
	Indication    Indication    `json:"indication,omitempty"`
	SubIndication SubIndication `json:"subIndication,omitempty"`
	Location      string        `json:"location,omitempty"`
	Errors        []Message     `json:"errors,omitempty"`
	Warnings      []Message     `json:"warnings,omitempty"`
	Infos         []Message     `json:"infos,omitempty"`
}

func NewConclusion(location string) *Conclusion {
	return &Conclusion{Location: location}
}

func (c *Conclusion) SetIndication(ind Indication, sub SubIndication) {
	c.Indication = ind
	c.SubIndication = sub
}

func (c *Conclusion) AddError(id MessageID, attrs map[string]string) {
	c.Errors = append(c.Errors, NewMessage(id, attrs))
}

func (c *Conclusion) AddWarning(id MessageID, attrs map[string]string) {
	c.Warnings = append(c.Warnings, NewMessage(id, attrs))
}

func (c *Conclusion) AddInfo(id MessageID, attrs map[string]string) {
	c.Infos = append(c.Infos, NewMessage(id, attrs))
}

func (c *Conclusion) IsValid() bool {
	return c != nil && c.Indication == IndicationValid
}

// Failed reports whether a FAIL-level check already decided the outcome.
func (c *Conclusion) Failed() bool {
	return c != nil && (c.Indication == IndicationInvalid || c.Indication == IndicationIndeterminate)
}

// CopyFrom replaces indication, sub-indication and messages with those of o.
func (c *Conclusion) CopyFrom(o *Conclusion) {
	if o == nil {
		return
	}
	c.Indication = o.Indication
	c.SubIndication = o.SubIndication
	c.Errors = append([]Message(nil), o.Errors...)
	c.Warnings = append([]Message(nil), o.Warnings...)
	c.Infos = append([]Message(nil), o.Infos...)
}

// Merge appends the messages of o without touching the indication.
func (c *Conclusion) Merge(o *Conclusion) {
	if o == nil {
		return
	}
	c.Errors = append(c.Errors, o.Errors...)
	c.Warnings = append(c.Warnings, o.Warnings...)
	c.Infos = append(c.Infos, o.Infos...)
}
