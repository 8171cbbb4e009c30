package utils

import (
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// 根据中文姓名生成拼音邮箱前缀，和教务系统里的用户名规则一致
func GenerateMailboxFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	mailbox := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		mailbox += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		mailbox += string(digits[rand.Intn(len(digits))])
	}

	return mailbox
}

var hexChars = "0123456789abcdef"

// 生成一个随机的 40 位十六进制账户地址
func GenerateRandomAddress() string {
	address := make([]byte, 40)
	for i := range address {
		address[i] = hexChars[rand.Intn(len(hexChars))]
	}
	return string(address)
}

func GenerateRandomAccount(password string, emailDomainName string) (*domain.Account, error) {
	fullName := GenerateRandomChineseName()
	mailbox := GenerateMailboxFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Address:      GenerateRandomAddress(),
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        mailbox + "@" + emailDomainName,
	}

	return account, nil
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

// 生成还没有到悬崖期的归属计划
func GenerateRandomCliffedSchedule(s *domain.Schedule) {
	s.StartTime = uint64(time.Now().Add(-time.Hour * 24).Unix())
	s.CliffDuration = uint64((time.Hour * 24 * 30).Seconds())
	s.TotalDuration = uint64((time.Hour * 24 * 365).Seconds())
}

// 生成正处于线性释放期的归属计划
func GenerateRandomVestingSchedule(s *domain.Schedule) {
	s.StartTime = uint64(time.Now().Add(-time.Hour * 24 * 90).Unix())
	s.CliffDuration = uint64((time.Hour * 24 * 30).Seconds())
	s.TotalDuration = uint64((time.Hour * 24 * 365).Seconds())
}

// 生成已经全部归属完毕的计划
func GenerateRandomFullyVestedSchedule(s *domain.Schedule) {
	s.StartTime = uint64(time.Now().Add(-time.Hour * 24 * 400).Unix())
	s.CliffDuration = uint64((time.Hour * 24 * 30).Seconds())
	s.TotalDuration = uint64((time.Hour * 24 * 365).Seconds())
}

// 随机生成一个归属计划
func GenerateRandomSchedule(owner string, beneficiary string) *domain.Schedule {
	s := domain.Schedule{
		Owner:       owner,
		Beneficiary: beneficiary,
		TotalAmount: uint64(rand.Intn(1000000) + 1),
		State:       domain.ScheduleStateActive,
	}

	// 随机生成一个阶段，根据不同阶段生成不同形态的归属计划
	randomPhase := rand.Intn(3)
	switch randomPhase {
	case 0:
		GenerateRandomCliffedSchedule(&s)
	case 1:
		GenerateRandomVestingSchedule(&s)
	case 2:
		GenerateRandomFullyVestedSchedule(&s)
	}

	return &s
}
