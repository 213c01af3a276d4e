package resource

import "fmt"

// Labels are the Persian nouns used in a resource's user-facing messages.
type Labels struct {
	Singular string
	Plural   string
}

var (
	TagLabels             = Labels{Singular: "برچسب", Plural: "برچسب‌ها"}
	CategoryLabels        = Labels{Singular: "دسته‌بندی", Plural: "دسته‌بندی‌ها"}
	ArticleCategoryLabels = Labels{Singular: "دسته‌بندی مقاله", Plural: "دسته‌بندی‌های مقاله"}
	ColorLabels           = Labels{Singular: "رنگ", Plural: "رنگ‌ها"}
	BrandLabels           = Labels{Singular: "برند", Plural: "برندها"}
)

func (l Labels) fetchFailed() string {
	return fmt.Sprintf("خطا در دریافت %s. لطفاً دوباره تلاش کنید.", l.Plural)
}

func (l Labels) createFailed() string {
	return fmt.Sprintf("خطا در ایجاد %s. لطفاً دوباره تلاش کنید.", l.Singular)
}

func (l Labels) updateFailed() string {
	return fmt.Sprintf("خطا در ویرایش %s. لطفاً دوباره تلاش کنید.", l.Singular)
}

func (l Labels) deleteFailed() string {
	return fmt.Sprintf("خطا در حذف %s. لطفاً دوباره تلاش کنید.", l.Singular)
}

func (l Labels) hasParent() string {
	return fmt.Sprintf("این %s دارای والد است و نمی‌توان آن را حذف کرد.", l.Singular)
}

func (l Labels) cycle() string {
	return fmt.Sprintf("یک %s نمی‌تواند زیرمجموعه خودش باشد.", l.Singular)
}
