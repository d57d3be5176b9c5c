package models

// Sender identifies who authored a message in the conversation thread
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Message is a single entry in the conversation thread
type Message struct {
	From Sender `json:"from" yaml:"from"`
	Text string `json:"text" yaml:"text"`
}

func UserMessage(text string) Message {
	return Message{From: SenderUser, Text: text}
}

func AgentMessage(text string) Message {
	return Message{From: SenderAgent, Text: text}
}
