package multilang

// seedTranslations is the default bidirectional English->Arabic word and
// phrase dictionary. Keys are lowercase English; phrases use single spaces.
var seedTranslations = map[string]string{
	"document":     "مستند",
	"documents":    "مستندات",
	"file":         "ملف",
	"files":        "ملفات",
	"report":       "تقرير",
	"reports":      "تقارير",
	"contract":     "عقد",
	"contracts":    "عقود",
	"invoice":      "فاتورة",
	"invoices":     "فواتير",
	"memo":         "مذكرة",
	"email":        "بريد إلكتروني",
	"system":       "نظام",
	"systems":      "أنظمة",
	"information":  "معلومات",
	"management":   "إدارة",
	"department":   "قسم",
	"project":      "مشروع",
	"projects":     "مشاريع",
	"user":         "مستخدم",
	"users":        "مستخدمون",
	"search":       "بحث",
	"find":         "ابحث",
	"show":         "اعرض",
	"new":          "جديد",
	"old":          "قديم",
	"date":         "تاريخ",
	"year":         "سنة",
	"month":        "شهر",
	"week":         "أسبوع",
	"today":        "اليوم",
	"yesterday":    "أمس",
	"author":       "مؤلف",
	"topic":        "موضوع",
	"budget":       "ميزانية",
	"finance":      "مالية",
	"financial":    "مالي",
	"legal":        "قانوني",
	"policy":       "سياسة",
	"policies":     "سياسات",
	"meeting":      "اجتماع",
	"presentation": "عرض تقديمي",
	"archive":      "أرشيف",
	"about":        "عن",
	"all":          "كل",
	"and":          "و",
	"the latest":   "الأحدث",
	"created by":   "من إعداد",
}

// seedTransliterations maps proper nouns and brand names that are carried
// across languages phonetically rather than translated.
var seedTransliterations = map[string]string{
	"microsoft": "مايكروسوفت",
	"google":    "جوجل",
	"excel":     "إكسل",
	"powerpoint": "باوربوينت",
	"word":      "وورد",
	"pdf":       "بي دي إف",
	"internet":  "إنترنت",
	"email":     "إيميل",
	"riyadh":    "الرياض",
	"dubai":     "دبي",
	"cairo":     "القاهرة",
}
