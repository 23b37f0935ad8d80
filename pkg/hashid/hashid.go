package hashid

import (
	"errors"

	"github.com/speps/go-hashids/v2"
)

const (
	salt      = "hotcams-playback"
	minLength = 10
)

var hd *hashids.HashID

func init() {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minLength
	hd, _ = hashids.NewWithData(data)
}

// Encode 将直播 ID 编码为对外的 playback id
func Encode(id uint64) (string, error) {
	return hd.EncodeInt64([]int64{int64(id)})
}

func Decode(s string) (uint64, error) {
	nums, err := hd.DecodeInt64WithError(s)
	if err != nil {
		return 0, err
	}
	if len(nums) != 1 || nums[0] < 0 {
		return 0, errors.New("invalid playback id")
	}
	return uint64(nums[0]), nil
}
