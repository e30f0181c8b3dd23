package domain

// MaxChunkSize is the largest reply the transport accepts in one message.
const MaxChunkSize = 500

// SegmentReply splits a reply into ordered chunks of at most maxSize runes.
// Chunk boundaries are purely positional. The final remainder is always
// appended, so even an empty reply produces one (empty) chunk.
func SegmentReply(text string, maxSize int) []string {
	runes := []rune(text)
	var chunks []string
	for len(runes) > maxSize {
		chunks = append(chunks, string(runes[:maxSize]))
		runes = runes[maxSize:]
	}
	return append(chunks, string(runes))
}
