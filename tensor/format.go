package tensor

import (
	"fmt"
	"strings"
)

// String renders a rank-2 tensor one bracketed row per line, a rank-1 tensor
// as a single bracketed row and higher ranks as shape plus flat data.
//
//	[1, 2]
//	[3, 4]
func (t *Tensor[T]) String() string {
	if t == nil {
		return "<nil>"
	}

	var sb strings.Builder
	switch t.rank {
	case 1:
		writeRow(&sb, t.data)
	case 2:
		cols := t.shape[1]
		for i := 0; i < t.shape[0]; i++ {
			writeRow(&sb, t.data[i*cols:(i+1)*cols])
			sb.WriteByte('\n')
		}
	default:
		fmt.Fprintf(&sb, "shape=%v data=", []int(t.shape))
		writeRow(&sb, t.data)
	}

	return sb.String()
}

func writeRow[T Number](sb *strings.Builder, row []T) {
	sb.WriteByte('[')
	for j, v := range row {
		if j > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%v", v)
	}
	sb.WriteByte(']')
}
