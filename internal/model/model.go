package model

// User 用户档案
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	XP           int      `json:"xp"`
	Level        int      `json:"level"`
	Badges       []string `json:"badges"`
	CreatedAt    int64    `json:"createdAt"`
}

// Task 任务记录
// Type 是自由文本分类，大小写不统一（如 "class"/"Class"/"exam"），
// 归一化只在统计层做一次。
type Task struct {
	ID        string `json:"id"`
	UserID    string `json:"-"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	DueDate   int64  `json:"dueDate"` // unix 秒
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// StudySession 计时学习记录
type StudySession struct {
	ID          string `json:"id"`
	UserID      string `json:"-"`
	Subject     string `json:"subject"`
	DurationMin int    `json:"durationMin"`
	Completed   bool   `json:"completed"`
	CreatedAt   int64  `json:"createdAt"`
}

// MoodLog 心情打卡记录，Mood 取值 1-5
type MoodLog struct {
	ID        string `json:"id"`
	UserID    string `json:"-"`
	Mood      int    `json:"mood"`
	Note      string `json:"note"`
	CreatedAt int64  `json:"createdAt"`
}

// Goal 目标记录，Type 如 "monthly"
type Goal struct {
	ID        string `json:"id"`
	UserID    string `json:"-"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"`
}

// TimetableEntry 每周循环课表行
type TimetableEntry struct {
	ID      string `json:"id"`
	UserID  string `json:"-"`
	Day     string `json:"day"`  // Mon..Sun
	Slot    string `json:"slot"` // 如 "09:00-10:00"
	Subject string `json:"subject"`
}

// Message 聊天消息（仅存储，不做实时推送）
type Message struct {
	ID        string `json:"id"`
	UserID    string `json:"-"`
	Sender    string `json:"sender"` // user | peer
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}
