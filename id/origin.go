package id

// Origin describes where an object identifier came from.
type Origin struct {
	Task  TaskID `json:"task" yaml:"task"`
	Index int64  `json:"index" yaml:"index"`
}

// IsReturn returns true for objects returned by the task.
func (o Origin) IsReturn() bool {
	return o.Index > 0
}

// IsPut returns true for objects put by the task.
func (o Origin) IsPut() bool {
	return o.Index < 0
}

// Ordinal returns the 1-based return or put number.
func (o Origin) Ordinal() int64 {
	if o.Index < 0 {
		return -o.Index
	}
	return o.Index
}

// Decode recovers the creating task and the creation index of an object.
func Decode(object ObjectID) (Origin, error) {
	index, err := ComputeObjectIndex(object)
	if err != nil {
		return Origin{}, err
	}
	return Origin{Task: ComputeTaskID(object), Index: index}, nil
}
