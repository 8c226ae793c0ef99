package uci

import "strings"

const bestMoveToken = "bestmove"

// ExtractBestMove returns the move following the first "bestmove" in reply,
// up to the next space or line break. It returns "" when reply has no
// bestmove or nothing follows it. "(none)" is returned as-is.
func ExtractBestMove(reply string) string {
	i := strings.Index(reply, bestMoveToken)
	if i < 0 {
		return ""
	}
	rest := reply[i:]
	// the word plus its separating space
	if len(rest) <= len(bestMoveToken)+1 {
		return ""
	}
	rest = rest[len(bestMoveToken)+1:]
	if end := strings.IndexAny(rest, " \r\n"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
