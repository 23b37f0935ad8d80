package models

// All 需要 AutoMigrate 的表
func All() []any {
	return []any{
		&Users{},
		&PerformerProfile{},
		&Stream{},
		&Tip{},
		&ChatMessage{},
		&Follow{},
		&Analytics{},
	}
}
