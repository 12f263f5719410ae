package repositories

import (
	"fmt"
	"strconv"
	"strings"
)

// jobQuery accumulates JOIN/WHERE fragments and their bind parameters while a
// filtered query is composed. arg registers a parameter and returns its
// numbered placeholder, so fragments can be appended in any order without
// placeholder bookkeeping.
type jobQuery struct {
	joins      []string
	conditions []string
	params     []interface{}
}

func (q *jobQuery) arg(v interface{}) string {
	q.params = append(q.params, v)
	return fmt.Sprintf("$%d", len(q.params))
}

func (q *jobQuery) where() string {
	if len(q.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conditions, " AND ")
}

func (q *jobQuery) joinClause() string {
	if len(q.joins) == 0 {
		return ""
	}
	return " " + strings.Join(q.joins, " ")
}

// vectorLiteral renders an embedding as a pgvector input literal, e.g.
// "[0.1,0.2,0.3]".
func vectorLiteral(embedding []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}
