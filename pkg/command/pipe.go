package command

// PipeToken separates the primary command from the pipe segment.
const PipeToken = "|"

// SplitPipe splits a line at the first pipe token. Both returned slices
// are copies; the token itself is dropped.
func SplitPipe(line []string) (first, last []string) {
	for i, t := range line {
		if t == PipeToken {
			first = append(first, line[:i]...)
			last = append(last, line[i+1:]...)
			return first, last
		}
	}
	return append(first, line...), nil
}
