package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

func GenID() int64 {
	return node.Generate().Int64()
}

// GenUint64 主键统一用 uint64
func GenUint64() uint64 {
	return uint64(node.Generate().Int64())
}
