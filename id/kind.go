package id

// Kind is the closed set of identifier kinds. It cannot be implemented
// outside this package.
type Kind interface {
	kind() string
}

// Kind tags, used as type arguments of ID, e.g. FromBinary[Task](data).
type (
	Unique          struct{}
	Task            struct{}
	Object          struct{}
	Driver          struct{}
	Job             struct{}
	Function        struct{}
	ActorClass      struct{}
	Actor           struct{}
	ActorHandle     struct{}
	ActorCheckpoint struct{}
	Worker          struct{}
	Config          struct{}
	Client          struct{}
)

func (Unique) kind() string          { return "UniqueID" }
func (Task) kind() string            { return "TaskID" }
func (Object) kind() string          { return "ObjectID" }
func (Driver) kind() string          { return "DriverID" }
func (Job) kind() string             { return "JobID" }
func (Function) kind() string        { return "FunctionID" }
func (ActorClass) kind() string      { return "ActorClassID" }
func (Actor) kind() string           { return "ActorID" }
func (ActorHandle) kind() string     { return "ActorHandleID" }
func (ActorCheckpoint) kind() string { return "ActorCheckpointID" }
func (Worker) kind() string          { return "WorkerID" }
func (Config) kind() string          { return "ConfigID" }
func (Client) kind() string          { return "ClientID" }

type (
	UniqueID          = ID[Unique]
	TaskID            = ID[Task]
	ObjectID          = ID[Object]
	DriverID          = ID[Driver]
	JobID             = ID[Job]
	FunctionID        = ID[Function]
	ActorClassID      = ID[ActorClass]
	ActorID           = ID[Actor]
	ActorHandleID     = ID[ActorHandle]
	ActorCheckpointID = ID[ActorCheckpoint]
	WorkerID          = ID[Worker]
	ConfigID          = ID[Config]
	ClientID          = ID[Client]
)

func kindName[K Kind]() string {
	var k K
	return k.kind()
}
