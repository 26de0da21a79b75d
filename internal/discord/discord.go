package discord

type FileMessage struct {
	ChannelID string
	Content   string
	Filename  string
	FileBody  []byte
}

type Client interface {
	SendChannelMessageWithFile(msg FileMessage) error
}
